package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/zipcart/auth-api/internal/repository/ports"
	"github.com/zipcart/auth-api/internal/repository/postgres/migrations"
)

// Store implements ports.Store over a pgx connection pool. A Store returned
// by InTx is bound to one transaction; all repositories vended from it share
// that transaction.
type Store struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, ext: db}
}

func (s *Store) Users() ports.UserRepository {
	return &UserRepository{db: s.ext}
}

func (s *Store) Otps() ports.OtpRepository {
	return &OtpRepository{db: s.ext}
}

func (s *Store) Tokens() ports.TokenRepository {
	return &TokenRepository{db: s.ext}
}

func (s *Store) InTx(ctx context.Context, fn func(ports.Store) error) error {
	if _, already := s.ext.(*sqlx.Tx); already {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&Store{db: s.db, ext: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// RunMigrations applies the embedded goose migrations.
func (s *Store) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db.DB, ".")
}
