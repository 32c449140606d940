package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram pushes adaptation notices to a single chat. Delivery failures are
// logged and dropped; the learning cycle never waits on Telegram.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegram creates a Telegram notifier for the given bot token and chat.
func NewTelegram(token string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Telegram{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *Telegram) AdaptationApplied(ctx context.Context, event Event) {
	n.send(ctx, fmt.Sprintf("🔧 <b>Schedule tuned</b>\n\n%s", event.Message))
}

func (n *Telegram) AdaptationRolledBack(ctx context.Context, event Event) {
	n.send(ctx, fmt.Sprintf("↩️ <b>Change reverted</b>\n\n%s", event.Message))
}

func (n *Telegram) send(ctx context.Context, text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "HTML"
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.WarnContext(ctx, "telegram_send_failed", "error", err)
	}
}

var _ Notifier = (*Telegram)(nil)
