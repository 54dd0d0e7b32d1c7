package chatbot

import (
	"intentbot/pkg/response"
	"net/http"
)

var (
	ErrInvalidEvent = response.NewError(http.StatusBadRequest, "INVALID_EVENT", "event body is not valid JSON")
	ErrListMessages = response.NewError(http.StatusInternalServerError, "LIST_MESSAGES_FAILED", "failed to list messages")
)
