package domain

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is a saved health note, optionally with an attached
// image. Records are immutable once created; the list is fetched fresh
// per view.
type MedicalRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Notes     string
	ImageURL  *string
	CreatedAt time.Time
}
