package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pointboard-app/pointboard/internal/domain"
)

// MockUserService implements service.UserService for handler tests
type MockUserService struct {
	RegisterFn       func(ctx context.Context, email, password, nickname, imageURL string) (*domain.User, error)
	LoginFn          func(ctx context.Context, email, password string) (*domain.User, string, error)
	GetUserFn        func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetPointFn       func(ctx context.Context, userID uuid.UUID) (int64, int64, error)
	CountUsersFn     func(ctx context.Context, requesterID uuid.UUID) (int64, error)
	UpdateProfileFn  func(ctx context.Context, userID uuid.UUID, updates map[string]string, imageURL string) error
	ChangePasswordFn func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	DeleteAccountFn  func(ctx context.Context, userID uuid.UUID) error

	// Default response values
	User  *domain.User
	Token string
	Count int64
	Err   error
}

// Register implements the service.UserService interface
func (m *MockUserService) Register(
	ctx context.Context,
	email, password, nickname, imageURL string,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, password, nickname, imageURL)
	}
	return m.User, m.Err
}

// Login implements the service.UserService interface
func (m *MockUserService) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return m.User, m.Token, m.Err
}

// GetUser implements the service.UserService interface
func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return m.User, m.Err
}

// GetPoint implements the service.UserService interface
func (m *MockUserService) GetPoint(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	if m.GetPointFn != nil {
		return m.GetPointFn(ctx, userID)
	}
	if m.User != nil {
		return m.User.Point, m.User.AccumPoint, m.Err
	}
	return 0, 0, m.Err
}

// CountUsers implements the service.UserService interface
func (m *MockUserService) CountUsers(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	if m.CountUsersFn != nil {
		return m.CountUsersFn(ctx, requesterID)
	}
	return m.Count, m.Err
}

// UpdateProfile implements the service.UserService interface
func (m *MockUserService) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	updates map[string]string,
	imageURL string,
) error {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, userID, updates, imageURL)
	}
	return m.Err
}

// ChangePassword implements the service.UserService interface
func (m *MockUserService) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	if m.ChangePasswordFn != nil {
		return m.ChangePasswordFn(ctx, userID, currentPassword, newPassword)
	}
	return m.Err
}

// DeleteAccount implements the service.UserService interface
func (m *MockUserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAccountFn != nil {
		return m.DeleteAccountFn(ctx, userID)
	}
	return m.Err
}

// MockRankService implements service.RankService for handler tests
type MockRankService struct {
	GetRankListFn func(ctx context.Context, userID uuid.UUID, cursor domain.RankCursor) (*domain.RankPage, error)

	// Default response values
	Page *domain.RankPage
	Err  error

	// Call tracking for verification
	Calls struct {
		mu      sync.Mutex
		Count   int
		UserIDs []uuid.UUID
		Cursors []domain.RankCursor
	}
}

// GetRankList implements the service.RankService interface
func (m *MockRankService) GetRankList(
	ctx context.Context,
	userID uuid.UUID,
	cursor domain.RankCursor,
) (*domain.RankPage, error) {
	m.Calls.mu.Lock()
	m.Calls.Count++
	m.Calls.UserIDs = append(m.Calls.UserIDs, userID)
	m.Calls.Cursors = append(m.Calls.Cursors, cursor)
	m.Calls.mu.Unlock()

	if m.GetRankListFn != nil {
		return m.GetRankListFn(ctx, userID, cursor)
	}
	return m.Page, m.Err
}

// MockRankCache implements service.RankCache for testing
type MockRankCache struct {
	GetFirstPageFn func(ctx context.Context) (*domain.RankPage, bool)
	SetFirstPageFn func(ctx context.Context, page *domain.RankPage)

	// Default stored page; nil means a cache miss
	Page *domain.RankPage

	GetCalls int
	SetCalls int
}

// GetFirstPage implements the service.RankCache interface
func (m *MockRankCache) GetFirstPage(ctx context.Context) (*domain.RankPage, bool) {
	m.GetCalls++
	if m.GetFirstPageFn != nil {
		return m.GetFirstPageFn(ctx)
	}
	return m.Page, m.Page != nil
}

// SetFirstPage implements the service.RankCache interface
func (m *MockRankCache) SetFirstPage(ctx context.Context, page *domain.RankPage) {
	m.SetCalls++
	if m.SetFirstPageFn != nil {
		m.SetFirstPageFn(ctx, page)
		return
	}
	m.Page = page
}
