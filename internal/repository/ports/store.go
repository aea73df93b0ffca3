package ports

import "context"

// Store vends the repositories and scopes multi-write sequences to a single
// database transaction. InTx runs fn against a Store bound to one
// transaction; any error (or panic) rolls back every write made through it.
type Store interface {
	Users() UserRepository
	Otps() OtpRepository
	Tokens() TokenRepository
	InTx(ctx context.Context, fn func(Store) error) error
}
