package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/domain"
	"github.com/arogya-mitra/arogyabot/internal/middleware"
	"github.com/arogya-mitra/arogyabot/internal/service"
	tg "github.com/arogya-mitra/arogyabot/internal/telegram"
)

// handleSaveRecord creates a medical record from the command text and,
// when the command replies to a photo, attaches that photo's URL.
// Records are immutable once created.
func (h *Handler) handleSaveRecord(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID

	user := middleware.GetUser(ctx)
	if user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🔐 Please /login first to save records.",
		})
		return
	}

	notes := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/save"))

	var imageURL *string
	if msg.ReplyToMessage != nil && len(msg.ReplyToMessage.Photo) > 0 {
		photo := msg.ReplyToMessage.Photo[len(msg.ReplyToMessage.Photo)-1]
		url, err := tg.GetFileURL(ctx, b, photo.FileID)
		if err != nil {
			slog.Error("get photo url", "error", err, "chat_id", chatID)
		} else {
			imageURL = &url
		}
	}

	record := &domain.MedicalRecord{
		UserID:   user.ID,
		Notes:    notes,
		ImageURL: imageURL,
	}
	if err := h.records.Save(ctx, record); err != nil {
		if errors.Is(err, domain.ErrEmptyRecord) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "✏️ Add a note or reply to a photo: /save <your health note>",
			})
			return
		}
		slog.Error("save record", "error", err, "user_id", user.ID)
		h.notifier.NotifyError(err, "save record")
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Failed to save the record. Please try again.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "✅ Record saved.",
	})
}

// handleListRecords fetches the user's records fresh and lists them.
func (h *Handler) handleListRecords(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID

	user := middleware.GetUser(ctx)
	if user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🔐 Please /login first to view records.",
		})
		return
	}

	records, err := h.records.ListByUser(ctx, user.ID)
	if err != nil {
		slog.Error("list records", "error", err, "user_id", user.ID)
		h.notifier.NotifyError(err, "list records")
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Failed to fetch records. Please try again.",
		})
		return
	}

	if len(records) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📂 No records yet. Save one with /save <note>.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("📂 *Your Health Records*\n")
	for i, r := range records {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, r.CreatedAt.Format("2 Jan 2006"))
		if r.Notes != "" {
			fmt.Fprintf(&sb, " — %s", r.Notes)
		}
		if r.ImageURL != nil {
			fmt.Fprintf(&sb, "\n   🖼 %s", *r.ImageURL)
		}
	}

	tg.SendLongMessage(ctx, b, chatID, sb.String(), nil)
}

// handleExportRecords sends the user's records as an xlsx document.
func (h *Handler) handleExportRecords(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID

	user := middleware.GetUser(ctx)
	if user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🔐 Please /login first to export records.",
		})
		return
	}

	records, err := h.records.ListByUser(ctx, user.ID)
	if err != nil {
		slog.Error("list records for export", "error", err, "user_id", user.ID)
		h.notifier.NotifyError(err, "export records")
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Failed to fetch records. Please try again.",
		})
		return
	}

	buf, err := service.BuildRecordsWorkbook(records)
	if err != nil {
		slog.Error("build records workbook", "error", err, "user_id", user.ID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Failed to build the export. Please try again.",
		})
		return
	}

	if err := tg.SendDocument(ctx, b, chatID, "health-records.xlsx", buf.Bytes(),
		fmt.Sprintf("📊 %d record(s)", len(records))); err != nil {
		slog.Error("send export", "error", err, "chat_id", chatID)
	}
}
