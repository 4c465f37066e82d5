package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/store"
)

// CreateTestUser creates a new valid user with a random email for testing.
// It does not save the user to the database.
func CreateTestUser(t *testing.T) *domain.User {
	t.Helper()
	email := fmt.Sprintf("test-%s@example.com", uuid.New().String()[:8])
	user, err := domain.NewUser(email, "Password123!", "tester", "")
	require.NoError(t, err, "Failed to create test user")
	return user
}

// MustInsertUser inserts a user row for testing and returns its ID. Pass a
// transaction obtained from WithTx for test isolation.
func MustInsertUser(ctx context.Context, t *testing.T, db store.DBTX, email string) uuid.UUID {
	t.Helper()
	return MustInsertUserWithPoint(ctx, t, db, email, 0, time.Now().UTC())
}

// MustInsertUserWithPoint inserts a user row with an explicit point total and
// creation time, which ranking tests use to control ordering.
func MustInsertUserWithPoint(
	ctx context.Context,
	t *testing.T,
	db store.DBTX,
	email string,
	point int64,
	createdAt time.Time,
) uuid.UUID {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPassword123!"), bcrypt.MinCost)
	require.NoError(t, err, "Failed to hash password")

	id := uuid.New()
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, email, hashed_password, nickname, description, image_url,
			point, accum_point, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', '', $5, $5, $6, $6)
	`, id, email, string(hashedPassword), "user-"+id.String()[:8], point, createdAt)
	require.NoError(t, err, "Failed to insert test user")

	return id
}

// GetUserByID retrieves a user row by ID. Returns nil if the user does not
// exist.
func GetUserByID(ctx context.Context, t *testing.T, db store.DBTX, id uuid.UUID) *domain.User {
	t.Helper()

	var user domain.User
	err := db.QueryRowContext(ctx, `
		SELECT id, email, hashed_password, nickname, description, image_url,
			point, accum_point, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.Nickname,
		&user.Description,
		&user.ImageURL,
		&user.Point,
		&user.AccumPoint,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		require.NoError(t, err, "Failed to query user by ID")
	}

	return &user
}

// CountUsers counts the users matching the given criteria.
func CountUsers(
	ctx context.Context,
	t *testing.T,
	db store.DBTX,
	whereClause string,
	args ...interface{},
) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM users"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	var count int
	err := db.QueryRowContext(ctx, query, args...).Scan(&count)
	require.NoError(t, err, "Failed to count users")

	return count
}
