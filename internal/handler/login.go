package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleLogin resolves a (name, email) pair to a stable identity.
// Resolution is an upsert keyed by email: signing in twice with the
// same email returns the same account.
func (h *Handler) handleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID

	parts := strings.Fields(msg.Text)
	if len(parts) < 3 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "✏️ Usage: /login <name> <email>",
		})
		return
	}

	email := parts[len(parts)-1]
	name := strings.Join(parts[1:len(parts)-1], " ")
	if !strings.Contains(email, "@") {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "✏️ That doesn't look like an email address. Usage: /login <name> <email>",
		})
		return
	}

	user, err := h.users.Resolve(ctx, msg.From.ID, name, email)
	if err != nil {
		slog.Error("resolve user", "error", err, "telegram_id", msg.From.ID)
		h.notifier.NotifyError(err, "login")
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Failed to sign in. Please try again.",
		})
		return
	}

	h.notifier.NotifyRegistration(msg.From.ID, user.Username, user.Email)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("✅ Welcome, %s! You can now /save and view /records.", user.Username),
	})
}
