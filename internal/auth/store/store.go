package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/authapp/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories are reached through methods so a Tx can hand
// out the same repositories bound to the transaction.
type Store interface {
	Users() Users

	ApplyMigrations(ctx context.Context) error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It commits when fn returns
	// nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
// Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user and returns its id. A duplicate email
	// yields ErrAlreadyExists.
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail matches the email exactly (case-sensitive).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateLastLogin stamps a successful login.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error

	// SetTOTPSecret stores a pending secret. totp_enabled is left unchanged.
	SetTOTPSecret(ctx context.Context, id int64, secret string) error

	// EnableTOTP flips totp_enabled on, but only when a secret is present.
	// A user without a secret yields ErrNotFound.
	EnableTOTP(ctx context.Context, id int64) error

	// DisableTOTP clears totp_enabled and totp_secret together.
	DisableTOTP(ctx context.Context, id int64) error

	DeleteUser(ctx context.Context, id int64) error

	CountUsers(ctx context.Context) (int64, error)
}
