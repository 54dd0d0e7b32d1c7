package chatbot

import (
	"intentbot/internal/entity"
	"strings"
	"time"
)

// WebhookRequest is the event posted by the messaging platform.
type WebhookRequest struct {
	Type string          `json:"type"`
	Msg  *WebhookMessage `json:"msg"`
}

type WebhookMessage struct {
	Src       string `json:"src"`
	Dst       string `json:"dst"`
	Txt       string `json:"txt"`
	Direction string `json:"direction"`
}

// Inbound reports whether the event carries a user message the bot should
// answer, and returns it.
func (r WebhookRequest) Inbound() (entity.InboundMessage, bool) {
	if r.Type == entity.EventSessionEnd || r.Type == entity.EventNewSession {
		return entity.InboundMessage{}, false
	}
	if r.Msg == nil {
		return entity.InboundMessage{}, false
	}
	if strings.EqualFold(r.Msg.Direction, entity.DirectionEgress) {
		return entity.InboundMessage{}, false
	}

	return entity.InboundMessage{
		Source:      r.Msg.Src,
		Destination: r.Msg.Dst,
		Text:        r.Msg.Txt,
		Direction:   r.Msg.Direction,
	}, true
}

type TextItem struct {
	Txt string `json:"txt"`
}

type WebhookResponse struct {
	Messages []TextItem `json:"messages,omitempty"`
	Whispers []TextItem `json:"whispers,omitempty"`
}

// WebhookResult is what the handler turns into an HTTP reply. Silent means
// the reply must be suppressed entirely.
type WebhookResult struct {
	Silent   bool
	Response WebhookResponse
}

type MessageResponse struct {
	ID          string    `json:"id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Received    string    `json:"received"`
	Responded   *string   `json:"responded"`
	Outcome     string    `json:"outcome"`
	Score       float64   `json:"score"`
	SentToSlack bool      `json:"sent_to_slack"`
	SentToUser  bool      `json:"sent_to_user"`
	CreatedAt   time.Time `json:"created_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}
