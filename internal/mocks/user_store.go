package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, user *domain.User) error
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn         func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn             func(ctx context.Context, user *domain.User) error
	UpdateProfileFieldFn func(ctx context.Context, id uuid.UUID, field, value string) error
	DeleteFn             func(ctx context.Context, id uuid.UUID) error
	GetPointFn           func(ctx context.Context, id uuid.UUID) (int64, int64, error)
	CountFn              func(ctx context.Context) (int64, error)

	// Data for default implementation, keyed by email
	Users       map[string]*domain.User
	LastUserID  uuid.UUID
	CreateError error

	// Call tracking for profile updates
	ProfileFieldCalls []ProfileFieldCall
}

// ProfileFieldCall records one UpdateProfileField invocation.
type ProfileFieldCall struct {
	ID    uuid.UUID
	Field string
	Value string
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	m.Users[user.Email] = user
	m.LastUserID = user.ID
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}

	return user, nil
}

// Update implements the UserStore interface
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	for email, existing := range m.Users {
		if existing.ID == user.ID {
			if email != user.Email {
				if _, exists := m.Users[user.Email]; exists {
					return store.ErrEmailExists
				}
				delete(m.Users, email)
			}
			m.Users[user.Email] = user
			return nil
		}
	}

	return store.ErrUserNotFound
}

// UpdateProfileField implements the UserStore interface
func (m *MockUserStore) UpdateProfileField(
	ctx context.Context,
	id uuid.UUID,
	field, value string,
) error {
	m.ProfileFieldCalls = append(m.ProfileFieldCalls, ProfileFieldCall{ID: id, Field: field, Value: value})

	if m.UpdateProfileFieldFn != nil {
		return m.UpdateProfileFieldFn(ctx, id, field, value)
	}

	for _, user := range m.Users {
		if user.ID != id {
			continue
		}
		switch field {
		case "nickname":
			user.Nickname = value
		case "description":
			user.Description = value
		case "image_url":
			user.ImageURL = value
		default:
			return store.ErrUpdateFailed
		}
		return nil
	}

	return store.ErrUserNotFound
}

// Delete implements the UserStore interface
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for email, user := range m.Users {
		if user.ID == id {
			delete(m.Users, email)
			return nil
		}
	}

	return store.ErrUserNotFound
}

// GetPoint implements the UserStore interface
func (m *MockUserStore) GetPoint(ctx context.Context, id uuid.UUID) (int64, int64, error) {
	if m.GetPointFn != nil {
		return m.GetPointFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user.Point, user.AccumPoint, nil
		}
	}

	return 0, 0, store.ErrUserNotFound
}

// Count implements the UserStore interface
func (m *MockUserStore) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	return int64(len(m.Users)), nil
}

// WithTx implements the UserStore interface for transaction support
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	// For mock purposes, just return the same mock
	return m
}
