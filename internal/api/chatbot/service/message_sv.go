package chatbotService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"intentbot/internal/api/chatbot"
	contextPkg "intentbot/pkg/context"
)

func (s *chatbotService) GetMessages(ctx context.Context, page, limit int) (*chatbot.MessageListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	offset := (page - 1) * limit
	messages, total, err := repo.Messages.GetMessages(ctx, limit, offset)
	if err != nil {
		return nil, chatbot.ErrListMessages
	}

	result := make([]chatbot.MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, chatbot.MessageResponse{
			ID:          m.ID,
			From:        m.From,
			To:          m.To,
			Received:    m.Received,
			Responded:   m.Responded,
			Outcome:     m.Outcome,
			Score:       m.Score,
			SentToSlack: m.SentToSlack,
			SentToUser:  m.SentToUser,
			CreatedAt:   m.CreatedAt,
		})
	}

	return &chatbot.MessageListResponse{
		Messages: result,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}
