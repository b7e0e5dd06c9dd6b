package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/capture"
	"github.com/arogya-mitra/arogyabot/internal/config"
	tg "github.com/arogya-mitra/arogyabot/internal/telegram"
)

// HandleVoice runs the voice round-trip: the voice note is the recorded
// audio, and only the backend's reply enters the transcript. The spoken
// input itself is never transcribed into the chat.
func (h *Handler) HandleVoice(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	if msg.Voice == nil {
		return
	}

	chatID := msg.Chat.ID
	ctrl := h.sessions.Get(chatID)

	data, _, err := tg.DownloadFile(ctx, b, msg.Voice.FileID)
	if err != nil {
		h.replyError(ctx, b, chatID, nil, fmt.Errorf("download voice note: %w", err), "voice")
		return
	}

	if err := ctrl.StartRecording(ctx, capture.NewMic(data)); err != nil {
		h.replyError(ctx, b, chatID, nil, err, "voice")
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	statusMsg, _ := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🎙 Processing your voice message...",
	})

	reqCtx, cancel := context.WithTimeout(ctx, config.RequestTimeout)
	defer cancel()

	reply, err := ctrl.StopRecording(reqCtx)
	if err != nil {
		h.replyError(ctx, b, chatID, statusMsg, err, "voice")
		return
	}

	if statusMsg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: statusMsg.ID,
		})
	}

	tg.SendLongMessage(ctx, b, chatID, reply, nil)
}
