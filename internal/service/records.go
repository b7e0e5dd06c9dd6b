package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arogya-mitra/arogyabot/internal/domain"
)

// RecordService persists medical records. Records are never updated in
// place; the chat flow only creates and lists them.
type RecordService struct {
	db *pgxpool.Pool
}

func NewRecordService(db *pgxpool.Pool) *RecordService {
	return &RecordService{db: db}
}

func (s *RecordService) Save(ctx context.Context, record *domain.MedicalRecord) error {
	if record.Notes == "" && record.ImageURL == nil {
		return domain.ErrEmptyRecord
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	row := s.db.QueryRow(ctx,
		`INSERT INTO medical_records (id, user_id, notes, image_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		record.ID, record.UserID, record.Notes, record.ImageURL,
	)
	if err := row.Scan(&record.CreatedAt); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func (s *RecordService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MedicalRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, notes, image_url, created_at
		 FROM medical_records WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []domain.MedicalRecord
	for rows.Next() {
		var r domain.MedicalRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.Notes, &r.ImageURL, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (s *RecordService) Delete(ctx context.Context, recordID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, recordID)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
