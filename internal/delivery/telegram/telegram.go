package telegram

import (
	"context"
	"time"

	"gopkg.in/telebot.v3"

	"trendbot/config"
	"trendbot/internal/service"
	"trendbot/pkg/logger"
)

type TelegramBotHandler struct {
	ctx     context.Context
	cfg     *config.Config
	log     *logger.Logger
	bot     *telebot.Bot
	service *service.Service
}

func NewTelegramBotHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	bot *telebot.Bot,
	service *service.Service,
) *TelegramBotHandler {
	return &TelegramBotHandler{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		bot:     bot,
		service: service,
	}
}

func (t *TelegramBotHandler) Start() {
	t.log.Info("Starting Telegram bot...")

	t.RegisterHandlers()

	if t.cfg.Telegram.WebhookURL != "" {
		t.log.Info("Setting webhook URL", logger.StringField("webhook_url", t.cfg.Telegram.WebhookURL))
		if err := t.bot.SetWebhook(&telebot.Webhook{
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: t.cfg.Telegram.WebhookURL,
			},
		}); err != nil {
			t.log.Error("Failed to set webhook", logger.ErrorField(err))
		}
		return
	}

	// No webhook configured: long polling.
	t.bot.Start()
}

func (t *TelegramBotHandler) Stop() {
	t.log.Info("Stopping Telegram bot...")

	// The handler's own ctx is already canceled at shutdown time.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopDone := make(chan struct{}, 1)
	go func() {
		t.bot.Stop()
		stopDone <- struct{}{}
	}()

	select {
	case <-stopDone:
		t.log.Info("Telegram bot stopped successfully")
	case <-ctx.Done():
		t.log.Warn("Timeout while stopping bot, forcing shutdown")
	}
}
