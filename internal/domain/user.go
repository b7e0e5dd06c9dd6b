package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity resolved from a (name, email) pair. Uniqueness is
// keyed by email: resolving the same email twice yields the same user.
type User struct {
	ID         uuid.UUID
	TelegramID int64
	Username   string
	Email      string
	CreatedAt  time.Time
}
