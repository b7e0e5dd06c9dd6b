package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/arogya-mitra/arogyabot/internal/domain"
)

type ctxKey string

const UserKey ctxKey = "user"

// GetUser extracts the signed-in user from context. Nil means the
// sender has not logged in; the chat flow still works for guests, only
// the record flows require an identity.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that loads a registered user into
// context when the sender has one.
func UserLoader(users domain.UserStore) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil {
				next(ctx, b, update)
				return
			}

			user, err := users.GetByTelegramID(ctx, from.ID)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					slog.Error("load user", "error", err, "telegram_id", from.ID)
				}
				next(ctx, b, update)
				return
			}

			next(context.WithValue(ctx, UserKey, user), b, update)
		}
	}
}
