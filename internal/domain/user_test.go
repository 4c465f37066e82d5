package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("test@example.com", "password123", "tester", "https://cdn.example.com/a.png")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, "tester", user.Nickname)
		assert.Equal(t, "https://cdn.example.com/a.png", user.ImageURL)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
		assert.Zero(t, user.Point)
		assert.Zero(t, user.AccumPoint)
	})

	t.Run("empty image URL is allowed", func(t *testing.T) {
		t.Parallel()
		_, err := NewUser("test@example.com", "password123", "tester", "")
		require.NoError(t, err)
	})

	tests := []struct {
		name     string
		email    string
		password string
		nickname string
		wantErr  error
	}{
		{"empty email", "", "password123", "tester", ErrEmptyEmail},
		{"email without at", "invalid-email", "password123", "tester", ErrInvalidEmail},
		{"email without domain dot", "user@localhost", "password123", "tester", ErrInvalidEmail},
		{"empty password", "test@example.com", "", "tester", ErrEmptyPassword},
		{"password too short", "test@example.com", "short", "tester", ErrPasswordTooShort},
		{"password too long", "test@example.com", strings.Repeat("a", 73), "tester", ErrPasswordTooLong},
		{"empty nickname", "test@example.com", "password123", "", ErrEmptyNickname},
		{"nickname too long", "test@example.com", "password123", strings.Repeat("n", 31), ErrNicknameTooLong},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tt.email, tt.password, tt.nickname, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	t.Run("stored user with only a hash is valid", func(t *testing.T) {
		t.Parallel()
		user := &User{
			ID:             uuid.New(),
			Email:          "test@example.com",
			HashedPassword: "$2a$10$fakehash",
			Nickname:       "tester",
		}
		assert.NoError(t, user.Validate())
	})

	t.Run("missing ID", func(t *testing.T) {
		t.Parallel()
		user := &User{Email: "test@example.com", HashedPassword: "x", Nickname: "tester"}
		assert.ErrorIs(t, user.Validate(), ErrEmptyUserID)
	})

	t.Run("no password and no hash", func(t *testing.T) {
		t.Parallel()
		user := &User{ID: uuid.New(), Email: "test@example.com", Nickname: "tester"}
		assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
	})

	t.Run("description too long", func(t *testing.T) {
		t.Parallel()
		user := &User{
			ID:             uuid.New(),
			Email:          "test@example.com",
			HashedPassword: "x",
			Nickname:       "tester",
			Description:    strings.Repeat("d", 501),
		}
		assert.ErrorIs(t, user.Validate(), ErrDescriptionTooLong)
	})
}
