package chatbotService

import (
	"context"
	"github.com/sirupsen/logrus"
	"intentbot/internal/api/chatbot"
	chatbotRepository "intentbot/internal/api/chatbot/repository"
	"intentbot/internal/entity"
	"intentbot/internal/resolver"
	"intentbot/pkg/notify"
	"intentbot/pkg/utils"
	"sync"
	"time"
)

const notifyTimeout = 10 * time.Second

type IChatbotService interface {
	HandleInbound(ctx context.Context, msg entity.InboundMessage, cfg entity.Config) chatbot.WebhookResult
	// Trace stores the raw event body when the trace setting is on.
	Trace(ctx context.Context, body []byte, cfg entity.Config)
	GetMessages(ctx context.Context, page, limit int) (*chatbot.MessageListResponse, error)
	// Wait blocks until every notification started so far has finished.
	Wait()
}

type chatbotService struct {
	log         *logrus.Logger
	chatbotRepo chatbotRepository.Repository
	resolver    resolver.IResolver
	notifier    notify.INotifier
	utils       utils.IUtils
	pending     sync.WaitGroup
}

func NewChatbotService(
	log *logrus.Logger,
	chatbotRepo chatbotRepository.Repository,
	resolver resolver.IResolver,
	notifier notify.INotifier,
	utils utils.IUtils,
) IChatbotService {
	return &chatbotService{
		log:         log,
		chatbotRepo: chatbotRepo,
		resolver:    resolver,
		notifier:    notifier,
		utils:       utils,
	}
}

func (s *chatbotService) Wait() {
	s.pending.Wait()
}
