package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
)

// Notifier reports operational events to an admin log chat. A zero
// chat ID disables it.
type Notifier struct {
	bot    *bot.Bot
	chatID int64
}

func NewNotifier(b *bot.Bot, chatID int64) *Notifier {
	return &Notifier{bot: b, chatID: chatID}
}

func (n *Notifier) send(message string) {
	if n.chatID == 0 {
		return
	}

	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      message,
		ParseMode: "Markdown",
	})
	if err != nil {
		slog.Error("failed to send admin notification", "error", err)
	}
}

func (n *Notifier) NotifyError(err error, context string) {
	n.send(fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}

func (n *Notifier) NotifyRegistration(telegramID int64, name, email string) {
	n.send(fmt.Sprintf("👤 *New Registration*\n\n*ID:* `%d`\n*Name:* %s\n*Email:* %s",
		telegramID, name, email))
}
