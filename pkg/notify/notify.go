package notify

import (
	"context"
	"errors"
	"fmt"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/spf13/cast"
	"intentbot/internal/entity"
	"sync"
)

var (
	ErrMissingWebhook = errors.New("slack is enabled but slack_webhook is empty")
	ErrMissingChat    = errors.New("telegram is enabled but telegram_token or telegram_chat_id is empty")
)

// INotifier mirrors a processed exchange to the operator channels switched on
// in the configuration.
type INotifier interface {
	Notify(ctx context.Context, cfg entity.Config, text string) error
	Enabled(cfg entity.Config) bool
}

type notifier struct {
	log              *logrus.Logger
	telegramEndpoint string

	mu   sync.Mutex
	bots map[string]*tgbotapi.BotAPI
}

func New(log *logrus.Logger) INotifier {
	return NewWithTelegramEndpoint(log, tgbotapi.APIEndpoint)
}

func NewWithTelegramEndpoint(log *logrus.Logger, endpoint string) INotifier {
	return &notifier{
		log:              log,
		telegramEndpoint: endpoint,
		bots:             make(map[string]*tgbotapi.BotAPI),
	}
}

func (n *notifier) Enabled(cfg entity.Config) bool {
	return cfg.Enabled(entity.ConfigSlack) || cfg.Enabled(entity.ConfigTelegram)
}

func (n *notifier) Notify(ctx context.Context, cfg entity.Config, text string) error {
	var errs []error

	if cfg.Enabled(entity.ConfigSlack) {
		if err := n.postSlack(ctx, cfg.String(entity.ConfigSlackWebhook), text); err != nil {
			errs = append(errs, err)
		}
	}

	if cfg.Enabled(entity.ConfigTelegram) {
		if err := n.postTelegram(cfg.String(entity.ConfigTelegramToken), cfg[entity.ConfigTelegramChatID], text); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (n *notifier) postSlack(ctx context.Context, webhook string, text string) error {
	if webhook == "" {
		return ErrMissingWebhook
	}

	if err := slack.PostWebhookContext(ctx, webhook, &slack.WebhookMessage{Text: text}); err != nil {
		return fmt.Errorf("post slack webhook: %w", err)
	}

	n.log.Debug("Posted exchange to slack")
	return nil
}

func (n *notifier) postTelegram(token string, rawChatID interface{}, text string) error {
	chatID, err := cast.ToInt64E(rawChatID)
	if token == "" || err != nil || chatID == 0 {
		return ErrMissingChat
	}

	bot, err := n.bot(token)
	if err != nil {
		return fmt.Errorf("telegram bot: %w", err)
	}

	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	n.log.Debug("Posted exchange to telegram")
	return nil
}

func (n *notifier) bot(token string) (*tgbotapi.BotAPI, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if bot, ok := n.bots[token]; ok {
		return bot, nil
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, n.telegramEndpoint)
	if err != nil {
		return nil, err
	}
	n.bots[token] = bot
	return bot, nil
}

// Summary is the text mirrored to the notification channels.
func Summary(source, destination, received, responded string) string {
	prefix := source + "<->" + destination + ": "
	if responded == "" {
		return prefix + "Received " + received + ", but found no response."
	}
	return prefix + "Received " + received + " and responded " + responded
}
