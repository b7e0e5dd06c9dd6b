package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/config"
)

// handleClear resets the transcript to the greeting. Mode, language and
// image state are left alone.
func (h *Handler) handleClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID
	h.sessions.Get(chatID).Clear()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔄 Conversation cleared.\n\n" + config.Greeting,
	})
}
