package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/zipcart/auth-api/internal/domain"
)

type OtpRepository struct {
	db sqlx.ExtContext
}

func NewOtpRepo(db *sqlx.DB) *OtpRepository {
	return &OtpRepository{db: db}
}

func (r *OtpRepository) Upsert(ctx context.Context, email string, code int, expiresAt time.Time) (*domain.OtpChallenge, error) {
	const query = `
        INSERT INTO otp_challenges (email, code, expires_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO UPDATE
        SET code = EXCLUDED.code,
            expires_at = EXCLUDED.expires_at,
            updated_at = NOW()
        RETURNING email, code, expires_at, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, email, code, expiresAt)
	var challenge domain.OtpChallenge
	if err := row.StructScan(&challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *OtpRepository) FindByEmail(ctx context.Context, email string) (*domain.OtpChallenge, error) {
	const query = `
        SELECT email, code, expires_at, created_at, updated_at
        FROM otp_challenges
        WHERE email = $1
    `
	var challenge domain.OtpChallenge
	if err := sqlx.GetContext(ctx, r.db, &challenge, query, email); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Delete is idempotent: deleting an absent challenge is not an error.
func (r *OtpRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM otp_challenges WHERE email = $1`
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}
