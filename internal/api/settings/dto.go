package settings

import (
	"intentbot/internal/entity"
	"time"
)

const RedactedValue = "********"

type ConfigResponse struct {
	Config entity.Config     `json:"config"`
	Labels map[string]string `json:"labels"`
}

// UpdateConfigRequest is merged into the stored document. A null value
// removes the key.
type UpdateConfigRequest map[string]interface{}

type CollectionStat struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type CollectionsResponse struct {
	Collections []CollectionStat `json:"collections"`
}

type ClearCollectionResponse struct {
	Collection string `json:"collection"`
	Removed    int64  `json:"removed"`
}

type MetadataResponse struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	UniqueID string `json:"unique_id"`
}

type BackupResponse struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot is the document uploaded by a backup.
type Snapshot struct {
	UniqueID  string           `json:"unique_id"`
	CreatedAt time.Time        `json:"created_at"`
	Config    entity.Config    `json:"config"`
	Intents   []entity.Intent  `json:"intents"`
	Examples  []entity.Example `json:"examples"`
}
