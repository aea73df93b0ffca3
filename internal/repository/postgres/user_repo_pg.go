package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zipcart/auth-api/internal/domain"
)

type UserRepository struct {
	db sqlx.ExtContext
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, name, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	const query = `
        INSERT INTO users (name, email, password_hash, password_salt)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, email, password_hash, password_salt, role, email_verified_at, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, name, email, passwordHash, passwordSalt)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, name, email string) (*domain.User, error) {
	const query = `
        INSERT INTO users (name, email, password_hash, password_salt, email_verified_at)
        VALUES ($1, $2, ''::bytea, ''::bytea, NOW())
        ON CONFLICT (email) DO UPDATE
        SET name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
            email_verified_at = COALESCE(users.email_verified_at, NOW()),
            updated_at = NOW()
        RETURNING id, name, email, password_hash, password_salt, role, email_verified_at, created_at, updated_at
    `
	row := r.db.QueryRowxContext(ctx, query, name, email)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, password_salt, role, email_verified_at, created_at, updated_at
        FROM users
        WHERE email = $1
    `
	var user domain.User
	if err := sqlx.GetContext(ctx, r.db, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, password_salt, role, email_verified_at, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	var user domain.User
	if err := sqlx.GetContext(ctx, r.db, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// MarkEmailVerified keeps the first verification timestamp when called twice.
func (r *UserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	const query = `
        UPDATE users
        SET email_verified_at = COALESCE(email_verified_at, $2),
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, verifiedAt)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `
        UPDATE users
        SET password_hash = $2,
            password_salt = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt)
	return err
}
