package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/domain"
	tg "github.com/arogya-mitra/arogyabot/internal/telegram"
)

// handleLanguage shows the response-language keyboard.
func (h *Handler) handleLanguage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID
	current := h.sessions.Get(chatID).Language()

	var rows [][]models.InlineKeyboardButton
	for _, lang := range domain.SupportedLanguages {
		label := lang.Name
		if lang.Code == current {
			label = "✅ " + label
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton(label, "lang_"+lang.Code)))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "🌐 Choose the language I should answer in:",
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

// handleLanguageSelect applies a language chosen from the keyboard.
func (h *Handler) handleLanguageSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	cq := update.CallbackQuery
	code := strings.TrimPrefix(cq.Data, "lang_")

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cq.ID,
	})

	if cq.Message.Message == nil || !domain.IsSupportedLanguage(code) {
		return
	}
	chatID := cq.Message.Message.Chat.ID

	h.sessions.Get(chatID).SetLanguage(code)

	name := code
	for _, lang := range domain.SupportedLanguages {
		if lang.Code == code {
			name = lang.Name
		}
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: cq.Message.Message.ID,
		Text:      fmt.Sprintf("🌐 I'll answer in %s from now on.", name),
	})
}
