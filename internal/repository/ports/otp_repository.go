package ports

import (
	"context"
	"time"

	"github.com/zipcart/auth-api/internal/domain"
)

type OtpRepository interface {
	// Upsert replaces the live challenge for email, if any. At most one row
	// exists per email at any instant.
	Upsert(ctx context.Context, email string, code int, expiresAt time.Time) (*domain.OtpChallenge, error)
	FindByEmail(ctx context.Context, email string) (*domain.OtpChallenge, error)
	Delete(ctx context.Context, email string) error
}
