package entity

import "time"

const (
	DirectionIngress = "ingress"
	DirectionEgress  = "egress"

	EventNewMessage = "new_message"
	EventNewSession = "new_session"
	EventSessionEnd = "session_end"
)

type InboundMessage struct {
	Source      string
	Destination string
	Text        string
	Direction   string
}

// SeenMessage is the audit record kept for every processed inbound message.
type SeenMessage struct {
	ID          string    `db:"id"`
	From        string    `db:"from_handle"`
	To          string    `db:"to_handle"`
	Received    string    `db:"received"`
	Responded   *string   `db:"responded"`
	Outcome     string    `db:"outcome"`
	Score       float64   `db:"score"`
	SentToSlack bool      `db:"sent_to_slack"`
	SentToUser  bool      `db:"sent_to_user"`
	CreatedAt   time.Time `db:"created_at"`
}

// TraceEvent is a raw webhook body kept while the trace setting is on.
type TraceEvent struct {
	ID        string    `db:"id"`
	RequestID string    `db:"request_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
