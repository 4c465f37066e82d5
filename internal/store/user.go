package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pointboard-app/pointboard/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. It validates the domain User and
	// hashes the plaintext password internally.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user carries the password hash, never the plaintext.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update writes back a complete user object. If a plaintext Password is
	// set, it is hashed and HashedPassword replaced.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// when changing to an email that is already in use.
	Update(ctx context.Context, user *domain.User) error

	// UpdateProfileField applies one profile field update as a single UPDATE
	// statement. Only allowlisted columns (nickname, description, image_url)
	// are accepted; anything else returns ErrUpdateFailed.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateProfileField(ctx context.Context, id uuid.UUID, field, value string) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetPoint returns the user's current and accumulated point totals.
	// Returns ErrUserNotFound if the user does not exist.
	GetPoint(ctx context.Context, id uuid.UUID) (point, accumPoint int64, err error)

	// Count returns the total number of registered users.
	Count(ctx context.Context) (int64, error)

	// WithTx returns a UserStore bound to the provided transaction, so that
	// multiple operations can share one transaction managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
