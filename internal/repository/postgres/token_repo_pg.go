package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zipcart/auth-api/internal/domain"
)

type TokenRepository struct {
	db sqlx.ExtContext
}

func NewTokenRepo(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.AuthToken, error) {
	const query = `
        INSERT INTO auth_tokens (user_id, token, expires_at, is_active)
        VALUES ($1, $2, $3, true)
        RETURNING id, user_id, token, is_active, expires_at, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, userID, token, expiresAt)
	var authToken domain.AuthToken
	if err := row.StructScan(&authToken); err != nil {
		return nil, err
	}
	return &authToken, nil
}

func (r *TokenRepository) FindActive(ctx context.Context, token string) (*domain.AuthToken, error) {
	const query = `
        SELECT id, user_id, token, is_active, expires_at, created_at
        FROM auth_tokens
        WHERE token = $1 AND is_active = true AND expires_at > NOW()
    `
	var authToken domain.AuthToken
	if err := sqlx.GetContext(ctx, r.db, &authToken, query, token); err != nil {
		return nil, err
	}
	return &authToken, nil
}

// DeactivateAllByUser revokes every outstanding token for the user, not just
// the one presented on the request.
func (r *TokenRepository) DeactivateAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE auth_tokens SET is_active = false
        WHERE user_id = $1 AND is_active = true
    `
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
