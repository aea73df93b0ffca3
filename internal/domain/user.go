package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleVendor   UserRole = "vendor"
	RoleRider    UserRole = "rider"
	RoleCustomer UserRole = "customer"
)

type User struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    []byte     `db:"password_hash" json:"-"`
	PasswordSalt    []byte     `db:"password_salt" json:"-"`
	Role            UserRole   `db:"role" json:"role"`
	EmailVerifiedAt *time.Time `db:"email_verified_at" json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Verified reports whether the account's email address has been confirmed
// through the registration OTP flow.
func (u *User) Verified() bool {
	return u.EmailVerifiedAt != nil
}
