package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/config"
	"github.com/arogya-mitra/arogyabot/internal/domain"
	tg "github.com/arogya-mitra/arogyabot/internal/telegram"
)

// HandleText processes private text messages as chat input for the
// inference backend.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	chatID := msg.Chat.ID
	ctrl := h.sessions.Get(chatID)

	if ctrl.Mode() == domain.ModeImage {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📷 Image mode is active. Send a photo to analyze, or /mode to switch back to chat.",
		})
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	statusMsg, _ := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "⏳ Thinking...",
	})

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	answer, err := ctrl.SendText(reqCtx, msg.Text)
	if err != nil {
		h.replyError(ctx, b, chatID, statusMsg, err, "chat")
		return
	}

	if statusMsg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: statusMsg.ID,
		})
	}

	tg.SendLongMessage(ctx, b, chatID, answer, nil)
}

// replyError surfaces exactly one user-visible notification per failed
// operation, without leaking raw transport detail.
func (h *Handler) replyError(ctx context.Context, b *bot.Bot, chatID int64, statusMsg *models.Message, err error, operation string) {
	var text string
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		text = "✏️ Please type a message."
	case errors.Is(err, domain.ErrRequestInFlight):
		text = "⏳ Please wait for the previous request to finish."
	case errors.Is(err, domain.ErrNoImageSelected):
		text = "📷 Please send an image first."
	case errors.Is(err, domain.ErrPermissionDenied):
		text = "🎙 I couldn't read that voice note. Please record it again."
	case errors.Is(err, domain.ErrRecordingActive):
		text = "🎙 Still processing your previous voice note."
	case errors.Is(err, domain.ErrInvalidResponse):
		text = "❌ Invalid response from the server."
	case errors.Is(err, context.DeadlineExceeded):
		text = "⏳ The request timed out. Please try again."
	default:
		slog.Error("operation failed", "operation", operation, "error", err, "chat_id", chatID)
		h.notifier.NotifyError(err, operation)
		text = "❌ Failed to fetch a response. Please try again."
	}

	if statusMsg != nil {
		tg.EditLongMessage(ctx, b, chatID, statusMsg.ID, text)
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}
