package chatbotService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"intentbot/internal/api/chatbot"
	"intentbot/internal/entity"
	"intentbot/internal/resolver"
	contextPkg "intentbot/pkg/context"
	"intentbot/pkg/notify"
	"time"
)

// HandleInbound answers one user message. Storage and notification failures
// are logged and never change the reply.
func (s *chatbotService) HandleInbound(ctx context.Context, msg entity.InboundMessage, cfg entity.Config) chatbot.WebhookResult {
	logger := contextPkg.Logger(ctx, s.log).WithFields(logrus.Fields{
		"src": msg.Source,
		"dst": msg.Destination,
	})

	received := resolver.Normalize(msg.Text)
	logger.WithField("text", received).Info("New message")

	outcome := s.resolver.Resolve(ctx, msg.Text, cfg, logger)

	s.record(ctx, msg, received, outcome, cfg, logger)
	s.mirror(msg, received, outcome, cfg, logger)

	if !outcome.HasOutput() {
		return chatbot.WebhookResult{Silent: true}
	}

	logger.WithField("output", outcome.Text).Info("Sending back a response")

	var resp chatbot.WebhookResponse
	if cfg.Enabled(entity.ConfigMessage) {
		resp.Messages = []chatbot.TextItem{{Txt: outcome.Text}}
	}
	if cfg.Enabled(entity.ConfigWhisper) {
		resp.Whispers = []chatbot.TextItem{{Txt: outcome.Text}}
	}

	return chatbot.WebhookResult{Response: resp}
}

func (s *chatbotService) record(ctx context.Context, msg entity.InboundMessage, received string, outcome resolver.Outcome, cfg entity.Config, logger logrus.FieldLogger) {
	var responded *string
	if outcome.HasOutput() {
		text := outcome.Text
		responded = &text
	}

	now := time.Now().UTC()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to generate message id")
		return
	}

	seen := entity.SeenMessage{
		ID:          id,
		From:        msg.Source,
		To:          msg.Destination,
		Received:    received,
		Responded:   responded,
		Outcome:     outcome.Kind.String(),
		Score:       outcome.Score,
		SentToSlack: cfg.Enabled(entity.ConfigSlack),
		SentToUser:  cfg.Enabled(entity.ConfigMessage),
		CreatedAt:   now,
	}

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to create repository client")
		return
	}

	if err := repo.Messages.CreateMessage(ctx, seen); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to record seen message")
	}
}

// mirror forwards a summary of the exchange to the notification channels in
// the background. The summary reports what the corpus produced, so a
// default response shows up as "found no response".
func (s *chatbotService) mirror(msg entity.InboundMessage, received string, outcome resolver.Outcome, cfg entity.Config, logger logrus.FieldLogger) {
	if s.notifier == nil || !s.notifier.Enabled(cfg) {
		return
	}

	responded := ""
	if outcome.Kind == resolver.Matched {
		responded = outcome.Text
	}
	text := notify.Summary(msg.Source, msg.Destination, received, responded)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, cfg, text); err != nil {
			logger.WithField("error", err.Error()).Error("Failed to mirror message to notification channel")
		}
	}()
}
