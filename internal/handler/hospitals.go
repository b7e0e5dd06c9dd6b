package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	tg "github.com/arogya-mitra/arogyabot/internal/telegram"
)

// handleHospitals asks for the user's location; the actual search
// happens when the location message arrives.
func (h *Handler) handleHospitals(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "📍 Share your location (attach → location) and I'll find hospitals near you.",
	})
}

// HandleLocation answers a shared location with a hospitals map link.
// Location sharing is the user's consent; a withheld location simply
// never produces this update.
func (h *Handler) HandleLocation(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	if msg.Location == nil {
		return
	}

	url := fmt.Sprintf("https://www.google.com/maps/search/hospitals/@%f,%f,15z",
		msg.Location.Latitude, msg.Location.Longitude)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "🏥 Hospitals near you:",
		ReplyMarkup: tg.InlineKeyboard(
			tg.ButtonRow(tg.URLButton("Open in Google Maps", url)),
		),
	})
}
