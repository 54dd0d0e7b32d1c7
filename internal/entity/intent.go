package entity

import "time"

type Intent struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	ResponseText string    `db:"response_text" json:"response_text"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Example is a sample phrase that should trigger its owning intent.
type Example struct {
	ID        string    `db:"id" json:"id"`
	Sample    string    `db:"sample" json:"sample"`
	IntentID  string    `db:"intent_id" json:"intent_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
