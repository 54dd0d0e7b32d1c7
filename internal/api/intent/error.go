package intents

import (
	"intentbot/pkg/response"
	"net/http"
)

var (
	ErrIntentNotFound    = response.NewError(http.StatusNotFound, "INTENT_NOT_FOUND", "intent not found")
	ErrExampleNotFound   = response.NewError(http.StatusNotFound, "EXAMPLE_NOT_FOUND", "example not found")
	ErrInvalidIntentData = response.NewError(http.StatusBadRequest, "INVALID_INTENT_DATA", "name and response_text must not be blank")
	ErrInvalidSample     = response.NewError(http.StatusBadRequest, "INVALID_SAMPLE", "sample must not be blank")
	ErrCreateIntent      = response.NewError(http.StatusInternalServerError, "CREATE_INTENT_FAILED", "failed to create intent")
	ErrUpdateIntent      = response.NewError(http.StatusInternalServerError, "UPDATE_INTENT_FAILED", "failed to update intent")
	ErrDeleteIntent      = response.NewError(http.StatusInternalServerError, "DELETE_INTENT_FAILED", "failed to delete intent")
	ErrListIntents       = response.NewError(http.StatusInternalServerError, "LIST_INTENTS_FAILED", "failed to list intents")
	ErrCreateExample     = response.NewError(http.StatusInternalServerError, "CREATE_EXAMPLE_FAILED", "failed to create example")
	ErrUpdateExample     = response.NewError(http.StatusInternalServerError, "UPDATE_EXAMPLE_FAILED", "failed to update example")
	ErrDeleteExample     = response.NewError(http.StatusInternalServerError, "DELETE_EXAMPLE_FAILED", "failed to delete example")
)

var (
	ErrInvalidImport = response.NewError(http.StatusBadRequest, "INVALID_IMPORT", "import document is not valid YAML")
	ErrImport        = response.NewError(http.StatusInternalServerError, "IMPORT_FAILED", "failed to import intents")
)
