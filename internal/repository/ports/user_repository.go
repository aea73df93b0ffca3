package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zipcart/auth-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, name, email string, passwordHash, passwordSalt []byte) (*domain.User, error)
	UpsertGoogleUser(ctx context.Context, name, email string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error
}
