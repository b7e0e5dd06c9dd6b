package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/config"
)

type rateWindow struct {
	start time.Time
	count int
}

// RateLimit returns middleware that enforces a per-chat messages-per-
// minute limit. State is in-memory; a restart resets all windows.
func RateLimit() bot.Middleware {
	var mu sync.Mutex
	windows := make(map[int64]*rateWindow)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages (not callbacks or other updates)
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			now := time.Now()

			mu.Lock()
			w, ok := windows[chatID]
			if !ok || now.Sub(w.start) >= time.Minute {
				w = &rateWindow{start: now}
				windows[chatID] = w
			}
			w.count++
			count := w.count
			mu.Unlock()

			if count > config.RateLimitPerMinute {
				slog.Debug("rate limited", "chat_id", chatID, "count", count)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many requests. Please wait a moment.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
