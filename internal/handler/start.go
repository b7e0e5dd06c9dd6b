package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/middleware"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID

	name := update.Message.From.FirstName
	if user := middleware.GetUser(ctx); user != nil {
		name = user.Username
	}

	welcomeText := fmt.Sprintf(
		"👋 Hello, *%s*!\n\n"+
			"I'm a health assistant. Describe your symptoms and I'll do my best to help.\n\n"+
			"📋 *Commands:*\n"+
			"/login — Sign in with name and email\n"+
			"/mode — Switch between chat and image analysis\n"+
			"/language — Choose my response language\n"+
			"/save — Save a health record\n"+
			"/records — List your health records\n"+
			"/export — Download records as a spreadsheet\n"+
			"/medicines — Look up generic medicine prices\n"+
			"/hospitals — Find hospitals near you\n"+
			"/clear — Start the conversation over\n\n"+
			"You can also send a voice note or, in image mode, a photo of a skin condition.",
		name,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      welcomeText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
