package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/config"
	tg "github.com/arogya-mitra/arogyabot/internal/telegram"
)

// handleMedicines looks up generic medicines and their MRP on the Jan
// Aushadhi product list.
func (h *Handler) handleMedicines(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID

	query := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/medicines"))
	if query == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "✏️ Usage: /medicines <name>, e.g. /medicines paracetamol",
		})
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	reqCtx, cancel := context.WithTimeout(ctx, config.CatalogTimeout)
	defer cancel()

	medicines, err := h.catalog.Search(reqCtx, query)
	if err != nil {
		slog.Error("medicine search", "error", err, "query", query)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Could not reach the medicine catalog. Please try again later.",
		})
		return
	}

	if len(medicines) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("🔎 No generic medicines found for %q.", query),
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("💊 *Generic medicines*\n")
	for _, m := range medicines {
		fmt.Fprintf(&sb, "\n• %s (%s) — ₹%s", m.Name, m.UnitSize, m.MRP.StringFixed(2))
	}
	sb.WriteString("\n\nPrices from Jan Aushadhi: " + h.cfg.JanAushadhiURL + config.ProductListPath)

	tg.SendLongMessage(ctx, b, chatID, sb.String(), nil)
}
