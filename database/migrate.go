package database

import (
	"context"
	"fmt"
	"github.com/jmoiron/sqlx"
)

// Tables lists the collections an operator may inspect or clear.
var Tables = []string{"intents", "examples", "seen_messages", "traces", "app_config"}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS intents (
		id            VARCHAR(26) PRIMARY KEY,
		name          TEXT NOT NULL,
		response_text TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS examples (
		id         VARCHAR(26) PRIMARY KEY,
		sample     TEXT NOT NULL,
		intent_id  VARCHAR(26) NOT NULL REFERENCES intents(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_examples_intent ON examples(intent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_examples_sample ON examples(sample)`,
	`CREATE TABLE IF NOT EXISTS seen_messages (
		id            VARCHAR(26) PRIMARY KEY,
		from_handle   TEXT NOT NULL DEFAULT '',
		to_handle     TEXT NOT NULL DEFAULT '',
		received      TEXT NOT NULL,
		responded     TEXT,
		outcome       VARCHAR(16) NOT NULL,
		score         DOUBLE PRECISION NOT NULL DEFAULT 0,
		sent_to_slack BOOLEAN NOT NULL DEFAULT FALSE,
		sent_to_user  BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_seen_messages_created ON seen_messages(created_at)`,
	`CREATE TABLE IF NOT EXISTS traces (
		id         VARCHAR(26) PRIMARY KEY,
		request_id TEXT NOT NULL DEFAULT '',
		body       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS app_config (
		id         INTEGER PRIMARY KEY,
		document   TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
}

func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
