package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/domain"
)

// handleMode flips between chat and image mode. The transcript and any
// selected image survive the toggle.
func (h *Handler) handleMode(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID
	ctrl := h.sessions.Get(chatID)

	text := "💬 Chat mode. Type a message or send a voice note."
	if ctrl.ToggleMode() == domain.ModeImage {
		text = "📷 Image mode. Send a photo of a skin condition, then /analyze."
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}
