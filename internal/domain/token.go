package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken records an issued bearer token. Multiple active tokens may
// coexist per user; logout deactivates all of them at once.
type AuthToken struct {
	ID        int64     `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"token"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
