package intents

import "time"

type CreateIntentRequest struct {
	Name         string `json:"name" validate:"required,max=256"`
	ResponseText string `json:"response_text" validate:"required"`
}

type UpdateIntentRequest struct {
	Name         string `json:"name" validate:"omitempty,max=256"`
	ResponseText string `json:"response_text" validate:"omitempty"`
}

type CreateExampleRequest struct {
	Sample   string `json:"sample" validate:"required,max=1024"`
	IntentID string `json:"intent_id" validate:"required"`
}

type UpdateExampleRequest struct {
	Sample   string `json:"sample" validate:"omitempty,max=1024"`
	IntentID string `json:"intent_id" validate:"omitempty"`
}

type TestRequest struct {
	Text string `json:"text" validate:"required"`
}

type ExampleResponse struct {
	ID        string    `json:"id"`
	Sample    string    `json:"sample"`
	IntentID  string    `json:"intent_id"`
	CreatedAt time.Time `json:"created_at"`
}

type IntentResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ResponseText string            `json:"response_text"`
	Examples     []ExampleResponse `json:"examples"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type IntentListResponse struct {
	Intents []IntentResponse `json:"intents"`
	Total   int              `json:"total"`
}

type DeleteAllResponse struct {
	Intents  int64 `json:"intents"`
	Examples int64 `json:"examples"`
}

// TestResponse previews what the webhook would answer for a text.
type TestResponse struct {
	Outcome   string  `json:"outcome"`
	Text      string  `json:"text"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Sample    string  `json:"sample,omitempty"`
	IntentID  string  `json:"intent_id,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Degraded  bool    `json:"degraded"`
}

// ImportDocument is the bulk corpus format accepted by the import endpoint
// and the import command.
type ImportDocument struct {
	Intents []ImportIntent `yaml:"intents" json:"intents"`
}

type ImportIntent struct {
	Name     string   `yaml:"name" json:"name"`
	Response string   `yaml:"response" json:"response"`
	Examples []string `yaml:"examples" json:"examples"`
}

type ImportResult struct {
	Intents  int `json:"intents"`
	Examples int `json:"examples"`
	Skipped  int `json:"skipped"`
}
