package settings

import (
	"intentbot/pkg/response"
	"net/http"
)

var (
	ErrConfigUnavailable   = response.NewError(http.StatusInternalServerError, "CONFIG_UNAVAILABLE", "failed to load configuration")
	ErrSaveConfig          = response.NewError(http.StatusInternalServerError, "SAVE_CONFIG_FAILED", "failed to save configuration")
	ErrInvalidConfig       = response.NewError(http.StatusBadRequest, "INVALID_CONFIG", "invalid configuration value")
	ErrUnknownCollection   = response.NewError(http.StatusBadRequest, "UNKNOWN_COLLECTION", "collection cannot be cleared")
	ErrClearCollection     = response.NewError(http.StatusInternalServerError, "CLEAR_COLLECTION_FAILED", "failed to clear collection")
	ErrCollectionStats     = response.NewError(http.StatusInternalServerError, "COLLECTION_STATS_FAILED", "failed to count collections")
	ErrBackupNotConfigured = response.NewError(http.StatusServiceUnavailable, "BACKUP_NOT_CONFIGURED", "backup storage is not configured")
	ErrBackupFailed        = response.NewError(http.StatusInternalServerError, "BACKUP_FAILED", "failed to upload backup")
)
