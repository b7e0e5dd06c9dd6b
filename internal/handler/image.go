package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/config"
	"github.com/arogya-mitra/arogyabot/internal/domain"
	"github.com/arogya-mitra/arogyabot/internal/session"
	tg "github.com/arogya-mitra/arogyabot/internal/telegram"
)

// HandlePhoto stores an incoming photo as the selected image for
// analysis. Selecting a new image discards the previous result; the
// selection itself never calls the backend.
func (h *Handler) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	if len(msg.Photo) == 0 {
		return
	}

	chatID := msg.Chat.ID
	ctrl := h.sessions.Get(chatID)

	// Highest resolution variant
	photo := msg.Photo[len(msg.Photo)-1]
	data, _, err := tg.DownloadFile(ctx, b, photo.FileID)
	if err != nil {
		h.replyError(ctx, b, chatID, nil, fmt.Errorf("download photo: %w", err), "pick image")
		return
	}

	ctrl.PickImage(domain.ImageRef{Source: photo.FileID, Data: data})

	// A caption of "analyze" submits the photo in one step.
	if strings.EqualFold(strings.TrimSpace(msg.Caption), "analyze") {
		h.analyzeSelected(ctx, b, chatID, ctrl)
		return
	}

	text := "🖼 Image selected. Use /analyze to check it."
	if ctrl.Mode() != domain.ModeImage {
		text = "🖼 Image selected. Use /analyze to check it, or /mode to switch to image mode."
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

// handleAnalyze submits the selected image for analysis. The result is
// reported on its own; it never becomes part of the chat transcript.
func (h *Handler) handleAnalyze(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID
	h.analyzeSelected(ctx, b, chatID, h.sessions.Get(chatID))
}

func (h *Handler) analyzeSelected(ctx context.Context, b *bot.Bot, chatID int64, ctrl *session.Controller) {
	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	statusMsg, _ := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "⏳ Analyzing image...",
	})

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	result, err := ctrl.AnalyzeImage(reqCtx)
	if err != nil {
		h.replyError(ctx, b, chatID, statusMsg, err, "analyze image")
		return
	}

	if statusMsg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: statusMsg.ID,
		})
	}

	tg.SendLongMessage(ctx, b, chatID, "🔬 "+result, nil)
}
