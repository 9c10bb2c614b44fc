package telegram

import (
	"bytes"
	"context"

	"gopkg.in/telebot.v3"

	"trendbot/pkg/logger"
	"trendbot/pkg/utils"
)

const genericErrorMessage = "❌ Sorry, an error occurred while generating the market analysis."

func (t *TelegramBotHandler) WithContext(handler func(ctx context.Context, c telebot.Context) error) func(c telebot.Context) error {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(t.ctx, t.cfg.Telegram.TimeoutDuration)
		defer cancel()

		return handler(ctx, c)
	}
}

func (t *TelegramBotHandler) RegisterHandlers() {
	t.bot.Handle("/start", t.WithContext(t.handleStart))
	t.bot.Handle("/help", t.WithContext(t.handleHelp))
	t.bot.Handle("/market", t.WithContext(t.handleMarket))
	t.bot.Handle(telebot.OnText, t.WithContext(t.handleText))
}

func (t *TelegramBotHandler) handleStart(ctx context.Context, c telebot.Context) error {
	message := `👋 *Welcome to the Market Trend Bot!* 🤖

I watch one market index, compare its short and long moving averages, and tell you whether the trend looks bullish or bearish, with matching news.

📊 /market - Get the current market analysis
🆘 /help - Show available commands`
	return c.Send(message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}

func (t *TelegramBotHandler) handleHelp(ctx context.Context, c telebot.Context) error {
	message := `🤖 *Market Analysis Bot Commands*

/market - Get current market analysis
/help - Show available commands`
	return c.Send(message, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
}

func (t *TelegramBotHandler) handleMarket(ctx context.Context, c telebot.Context) error {
	chatID := c.Chat().ID
	if !t.isAllowed(chatID) {
		t.log.WarnContext(ctx, "Unauthorized access attempt",
			logger.IntField("chat_id", int(chatID)))
		return c.Send("⚠️ Sorry, you are not authorized to use this bot.")
	}

	if err := c.Notify(telebot.Typing); err != nil {
		t.log.WarnContext(ctx, "Failed to send typing action", logger.ErrorField(err))
	}

	utils.GoSafe(func() {
		reportCtx, cancel := context.WithTimeout(t.ctx, t.cfg.Telegram.TimeoutDuration)
		defer cancel()

		report := t.service.ReportService.GenerateReport(reportCtx)

		if report.Chart != nil {
			photo := &telebot.Photo{
				File:    telebot.FromReader(bytes.NewReader(report.Chart)),
				Caption: "Market Trend Visualization",
			}
			if err := c.Send(photo); err != nil {
				t.log.ErrorContext(reportCtx, "Failed to send chart", logger.ErrorField(err))
			}
		}

		if err := c.Send(report.Text, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown}); err != nil {
			t.log.ErrorContext(reportCtx, "Failed to send report", logger.ErrorField(err))
			if err := c.Send(genericErrorMessage); err != nil {
				t.log.ErrorContext(reportCtx, "Failed to send error message", logger.ErrorField(err))
			}
		}
	})

	return nil
}

func (t *TelegramBotHandler) handleText(ctx context.Context, c telebot.Context) error {
	return c.Send("I don't recognize that. Use /help to see available commands.")
}

func (t *TelegramBotHandler) isAllowed(chatID int64) bool {
	for _, id := range t.cfg.Telegram.AllowedChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
