package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/mocks"
	"github.com/pointboard-app/pointboard/internal/platform/postgres"
	"github.com/pointboard-app/pointboard/internal/service"
	"github.com/pointboard-app/pointboard/internal/store"
	"github.com/pointboard-app/pointboard/internal/testutils"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.New().String()[:8])
}

func TestPostgresUserStore(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)
	userStore := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)
	ctx := context.Background()

	t.Run("Create hashes the password and clears the plaintext", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)

			user, err := domain.NewUser(uniqueEmail("create"), "password123", "tester", "")
			require.NoError(t, err)

			require.NoError(t, txStore.Create(ctx, user))
			assert.Empty(t, user.Password)
			assert.NotEmpty(t, user.HashedPassword)

			stored, err := txStore.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, user.Email, stored.Email)
			assert.NoError(t, bcrypt.CompareHashAndPassword(
				[]byte(stored.HashedPassword), []byte("password123")))
		})
	})

	t.Run("Create rejects a duplicate email", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)
			email := uniqueEmail("dup")

			first, err := domain.NewUser(email, "password123", "tester", "")
			require.NoError(t, err)
			require.NoError(t, txStore.Create(ctx, first))

			second, err := domain.NewUser(email, "password456", "other", "")
			require.NoError(t, err)
			assert.ErrorIs(t, txStore.Create(ctx, second), store.ErrEmailExists)
		})
	})

	t.Run("GetByID and GetByEmail miss with ErrUserNotFound", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)

			_, err := txStore.GetByID(ctx, uuid.New())
			assert.ErrorIs(t, err, store.ErrUserNotFound)

			_, err = txStore.GetByEmail(ctx, uniqueEmail("missing"))
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})

	t.Run("UpdateProfileField writes allowlisted columns", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)
			id := testutils.MustInsertUser(ctx, t, tx, uniqueEmail("profile"))

			require.NoError(t, txStore.UpdateProfileField(ctx, id, "nickname", "renamed"))
			require.NoError(t, txStore.UpdateProfileField(ctx, id, "description", "new bio"))
			require.NoError(t, txStore.UpdateProfileField(ctx, id, "image_url", "https://cdn.example.com/a.png"))

			stored, err := txStore.GetByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "renamed", stored.Nickname)
			assert.Equal(t, "new bio", stored.Description)
			assert.Equal(t, "https://cdn.example.com/a.png", stored.ImageURL)
		})
	})

	t.Run("UpdateProfileField rejects non-profile columns", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)
			id := testutils.MustInsertUser(ctx, t, tx, uniqueEmail("reject"))

			assert.ErrorIs(t,
				txStore.UpdateProfileField(ctx, id, "hashed_password", "owned"),
				store.ErrUpdateFailed)
			assert.ErrorIs(t,
				txStore.UpdateProfileField(ctx, id, "point", "99999"),
				store.ErrUpdateFailed)
		})
	})

	t.Run("UpdateProfileField misses with ErrUserNotFound", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)
			assert.ErrorIs(t,
				txStore.UpdateProfileField(ctx, uuid.New(), "nickname", "ghost"),
				store.ErrUserNotFound)
		})
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)
			id := testutils.MustInsertUser(ctx, t, tx, uniqueEmail("delete"))

			require.NoError(t, txStore.Delete(ctx, id))
			_, err := txStore.GetByID(ctx, id)
			assert.ErrorIs(t, err, store.ErrUserNotFound)

			assert.ErrorIs(t, txStore.Delete(ctx, id), store.ErrUserNotFound)
		})
	})

	t.Run("GetPoint returns both balances", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)
			id := testutils.MustInsertUserWithPoint(
				ctx, t, tx, uniqueEmail("point"), 120, time.Now().UTC())

			point, accumPoint, err := txStore.GetPoint(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, int64(120), point)
			assert.Equal(t, int64(120), accumPoint)

			_, _, err = txStore.GetPoint(ctx, uuid.New())
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})

	t.Run("Count matches inserted rows", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)

			before, err := txStore.Count(ctx)
			require.NoError(t, err)

			testutils.MustInsertUser(ctx, t, tx, uniqueEmail("count"))
			testutils.MustInsertUser(ctx, t, tx, uniqueEmail("count"))

			after, err := txStore.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, before+2, after)
		})
	})
}

func TestPostgresUserStoreUpdate(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)
	userStore := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)
	ctx := context.Background()

	t.Run("rehashes a replaced plaintext password", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)

			user, err := domain.NewUser(uniqueEmail("rehash"), "password123", "tester", "")
			require.NoError(t, err)
			require.NoError(t, txStore.Create(ctx, user))

			stored, err := txStore.GetByID(ctx, user.ID)
			require.NoError(t, err)

			stored.Password = "newpassword1"
			require.NoError(t, txStore.Update(ctx, stored))
			assert.Empty(t, stored.Password)

			reloaded, err := txStore.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.NoError(t, bcrypt.CompareHashAndPassword(
				[]byte(reloaded.HashedPassword), []byte("newpassword1")))
			assert.Error(t, bcrypt.CompareHashAndPassword(
				[]byte(reloaded.HashedPassword), []byte("password123")))
		})
	})

	t.Run("rejects updating to a taken email", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)
			takenEmail := uniqueEmail("taken")

			first, err := domain.NewUser(takenEmail, "password123", "tester", "")
			require.NoError(t, err)
			require.NoError(t, txStore.Create(ctx, first))

			second, err := domain.NewUser(uniqueEmail("mover"), "password123", "other", "")
			require.NoError(t, err)
			require.NoError(t, txStore.Create(ctx, second))

			stored, err := txStore.GetByID(ctx, second.ID)
			require.NoError(t, err)
			stored.Email = takenEmail
			assert.ErrorIs(t, txStore.Update(ctx, stored), store.ErrEmailExists)
		})
	})

	t.Run("misses with ErrUserNotFound", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			txStore := userStore.WithTx(tx)

			ghost, err := domain.NewUser(uniqueEmail("ghost"), "password123", "tester", "")
			require.NoError(t, err)
			assert.ErrorIs(t, txStore.Update(ctx, ghost), store.ErrUserNotFound)
		})
	})
}

// Exercises the service's transaction against a real database: a profile
// update set that fails partway must leave every field as it was.
func TestUserServiceProfileUpdateRollback(t *testing.T) {
	if !testutils.IsIntegrationTestEnvironment() {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}
	t.Parallel()

	db := testutils.GetTestDB(t)
	userStore := postgres.NewPostgresUserStore(db, bcrypt.MinCost, nil)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewUserService(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{}, db, log)
	ctx := context.Background()

	// The service runs its own transaction, so the fixture is committed and
	// cleaned up afterwards rather than wrapped in a rollback.
	user, err := domain.NewUser(uniqueEmail("atomic"), "password123", "tester", "")
	require.NoError(t, err)
	require.NoError(t, userStore.Create(ctx, user))
	t.Cleanup(func() { _ = userStore.Delete(context.Background(), user.ID) })

	require.NoError(t, userStore.UpdateProfileField(ctx, user.ID, "description", "original"))

	err = svc.UpdateProfile(ctx, user.ID, map[string]string{
		"description":     "half applied",
		"hashed_password": "tampered",
	}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUpdateFailed)

	stored, err := userStore.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Description)
}
