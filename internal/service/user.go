package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arogya-mitra/arogyabot/internal/domain"
)

// UserService resolves identities against the users table.
type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

// Resolve finds the user with the given email, creating one if absent.
// The lookup is keyed by email only: a returning user keeps their
// original record regardless of the name they sign in with.
func (s *UserService) Resolve(ctx context.Context, telegramID int64, username, email string) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, telegram_id, username, email, created_at FROM users WHERE email = $1`,
		email,
	)

	user, err := scanUser(row)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	id := uuid.New()
	row = s.db.QueryRow(ctx,
		`INSERT INTO users (id, telegram_id, username, email)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, telegram_id, username, email, created_at`,
		id, telegramID, username, email,
	)

	user, err = scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, telegram_id, username, email, created_at
		 FROM users WHERE telegram_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		telegramID,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.Email, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
