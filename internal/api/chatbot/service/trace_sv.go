package chatbotService

import (
	"golang.org/x/net/context"
	"intentbot/internal/entity"
	contextPkg "intentbot/pkg/context"
	"time"
)

func (s *chatbotService) Trace(ctx context.Context, body []byte, cfg entity.Config) {
	if !cfg.Enabled(entity.ConfigTrace) {
		return
	}

	logger := contextPkg.Logger(ctx, s.log)

	now := time.Now().UTC()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to generate trace id")
		return
	}

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		logger.WithField("error", err.Error()).Error("Failed to create repository client")
		return
	}

	trace := entity.TraceEvent{
		ID:        id,
		RequestID: contextPkg.GetRequestID(ctx),
		Body:      string(body),
		CreatedAt: now,
	}
	if err := repo.Traces.CreateTrace(ctx, trace); err != nil {
		logger.WithField("error", err.Error()).Error("Failed to record trace")
	}
}
