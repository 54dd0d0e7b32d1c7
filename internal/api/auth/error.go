package auth

import (
	"intentbot/pkg/response"
	"net/http"
)

var (
	ErrInvalidPassword      = response.NewError(http.StatusUnauthorized, "INVALID_PASSWORD", "invalid password")
	ErrLoginNotRequired     = response.NewError(http.StatusBadRequest, "LOGIN_NOT_REQUIRED", "no admin password is configured")
	ErrSessionNotConfigured = response.NewError(http.StatusServiceUnavailable, "SESSION_NOT_CONFIGURED", "session signing is not configured")
	ErrConfigUnavailable    = response.NewError(http.StatusInternalServerError, "CONFIG_UNAVAILABLE", "failed to load configuration")
	ErrCreateSession        = response.NewError(http.StatusInternalServerError, "CREATE_SESSION_FAILED", "failed to create session")
)
