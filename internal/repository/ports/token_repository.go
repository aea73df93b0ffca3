package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zipcart/auth-api/internal/domain"
)

type TokenRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.AuthToken, error)
	FindActive(ctx context.Context, token string) (*domain.AuthToken, error)
	DeactivateAllByUser(ctx context.Context, userID uuid.UUID) error
}
