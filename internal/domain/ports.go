package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserStore resolves and looks up users in the persistent store.
type UserStore interface {
	// Resolve performs an upsert keyed by email: the existing user is
	// returned if one matches, otherwise a new one is created.
	Resolve(ctx context.Context, telegramID int64, username, email string) (*User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}

// RecordStore persists medical records. Records are append-only; Delete
// exists as a capability but is not part of the chat flow.
type RecordStore interface {
	Save(ctx context.Context, record *MedicalRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]MedicalRecord, error)
	Delete(ctx context.Context, recordID uuid.UUID) error
}
