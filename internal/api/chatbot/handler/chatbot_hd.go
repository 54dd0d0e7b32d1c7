package chatbotHandler

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/context"
	"intentbot/internal/api/chatbot"
	contextPkg "intentbot/pkg/context"
	"intentbot/pkg/handlerUtil"
	"intentbot/pkg/log"
	"strconv"
	"time"
)

func (h *ChatbotHandler) HandleWebhook(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)
	cfg := h.middleware.GetConfig(ctx)

	h.chatbotService.Trace(c, ctx.Body(), cfg)

	var req chatbot.WebhookRequest
	if err := jsoniter.Unmarshal(ctx.Body(), &req); err != nil {
		return errHandler.Handle(ctx, requestID, chatbot.ErrInvalidEvent, ctx.Path(), "webhook")
	}

	msg, ok := req.Inbound()
	if !ok {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"type":       req.Type,
		}).Debug("Ignoring non message event")
		return ctx.JSON(fiber.Map{})
	}

	result := h.chatbotService.HandleInbound(c, msg, cfg)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		if result.Silent {
			ctx.Status(fiber.StatusOK)
			return nil
		}
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result.Response)
	}
}

func (h *ChatbotHandler) GetMessages(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	page, err := strconv.Atoi(ctx.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(ctx.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	result, err := h.chatbotService.GetMessages(c, page, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_messages")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
