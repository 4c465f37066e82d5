package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/service/auth"
	"github.com/pointboard-app/pointboard/internal/store"
)

// UserService provides registration, login, and profile operations. Every
// operation runs inside a single request-scoped database transaction; any
// failure rolls the transaction back and the domain error propagates
// unchanged to the caller.
type UserService interface {
	// Register creates a new account. Returns store.ErrEmailExists if the
	// email is already registered.
	Register(ctx context.Context, email, password, nickname, imageURL string) (*domain.User, error)

	// Login checks the credentials and issues a session token.
	// Returns store.ErrUserNotFound for an unknown email and
	// auth.ErrInvalidCredentials for a password mismatch.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	// GetUser retrieves a user by ID. Returns store.ErrUserNotFound if absent.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetPoint returns the user's current and accumulated point totals.
	GetPoint(ctx context.Context, userID uuid.UUID) (point, accumPoint int64, err error)

	// CountUsers returns the total user count. The requester must exist;
	// an unknown requester yields store.ErrUserNotFound.
	CountUsers(ctx context.Context, requesterID uuid.UUID) (int64, error)

	// UpdateProfile applies the given profile field updates, each as its own
	// sequential write inside one transaction. A non-empty imageURL is
	// treated as one more field update. Any failure leaves no field updated.
	UpdateProfile(ctx context.Context, userID uuid.UUID, updates map[string]string, imageURL string) error

	// ChangePassword replaces the user's password after verifying the
	// current one. Returns auth.ErrInvalidCredentials on a mismatch and
	// store.ErrUserNotFound if the user does not exist.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// DeleteAccount removes the user. Returns store.ErrUserNotFound if absent.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	db               *sql.DB
	logger           *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		db:               db,
		logger:           logger.With("component", "user_service"),
	}
}

// Register creates a new account inside a transaction.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, password, nickname, imageURL string,
) (*domain.User, error) {
	user, err := domain.NewUser(email, password, nickname, imageURL)
	if err != nil {
		s.logger.Debug("rejected invalid registration",
			"error", err)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register an existing email")
		} else {
			s.logger.Error("failed to register user",
				"error", err)
		}
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID)
	return user, nil
}

// Login verifies the credentials and issues a session token. The lookup and
// the hash comparison both happen inside the operation's transaction.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	var (
		user  *domain.User
		token string
	)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		user, err = s.userStore.WithTx(tx).GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
			return auth.ErrInvalidCredentials
		}

		token, err = s.jwtService.GenerateToken(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to issue session token: %w", err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			s.logger.Debug("login attempt for unknown email")
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.logger.Debug("login attempt with wrong password",
				"user_id", user.ID)
		default:
			s.logger.Error("login failed",
				"error", err)
		}
		return nil, "", err
	}

	s.logger.Info("user logged in",
		"user_id", user.ID)
	return user, token, nil
}

// GetUser retrieves a user by ID inside a transaction.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		user, err = s.userStore.WithTx(tx).GetByID(ctx, userID)
		return err
	})

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found",
				"user_id", userID)
		} else {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, err
	}

	return user, nil
}

// GetPoint returns the user's point balances.
func (s *UserServiceImpl) GetPoint(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	var point, accumPoint int64

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		point, accumPoint, err = s.userStore.WithTx(tx).GetPoint(ctx, userID)
		return err
	})

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("point lookup for unknown user",
				"user_id", userID)
		} else {
			s.logger.Error("failed to retrieve user point",
				"error", err,
				"user_id", userID)
		}
		return 0, 0, err
	}

	return point, accumPoint, nil
}

// CountUsers returns the total user count after confirming the requester
// exists.
func (s *UserServiceImpl) CountUsers(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	var count int64

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		if _, err := txStore.GetByID(ctx, requesterID); err != nil {
			return err
		}

		var err error
		count, err = txStore.Count(ctx)
		return err
	})

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("count requested by unknown user",
				"user_id", requesterID)
		} else {
			s.logger.Error("failed to count users",
				"error", err)
		}
		return 0, err
	}

	return count, nil
}

// UpdateProfile applies each field update as a separate sequential write
// within one transaction, in deterministic (sorted) field order. If any
// write fails the rollback leaves no field updated.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	updates map[string]string,
	imageURL string,
) error {
	merged := make(map[string]string, len(updates)+1)
	for field, value := range updates {
		merged[field] = value
	}
	if imageURL != "" {
		merged["image_url"] = imageURL
	}
	if len(merged) == 0 {
		return domain.NewValidationError("updates", "must not be empty", domain.ErrValidation)
	}

	fields := make([]string, 0, len(merged))
	for field := range merged {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		if _, err := txStore.GetByID(ctx, userID); err != nil {
			return err
		}

		for _, field := range fields {
			if err := txStore.UpdateProfileField(ctx, userID, field, merged[field]); err != nil {
				return fmt.Errorf("failed to update %s: %w", field, err)
			}
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("profile update for unknown user",
				"user_id", userID)
		} else {
			s.logger.Error("failed to update profile",
				"error", err,
				"user_id", userID)
		}
		return err
	}

	s.logger.Info("profile updated",
		"user_id", userID,
		"fields", fields)
	return nil
}

// ChangePassword verifies the current password and writes the user back with
// the new plaintext set, which the store hashes. The whole exchange runs
// inside one transaction.
func (s *UserServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	if len(newPassword) < domain.MinPasswordLength {
		s.logger.Debug("rejected too-short new password",
			"user_id", userID)
		return domain.ErrPasswordTooShort
	}
	if len(newPassword) > domain.MaxPasswordLength {
		s.logger.Debug("rejected too-long new password",
			"user_id", userID)
		return domain.ErrPasswordTooLong
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.passwordVerifier.Compare(user.HashedPassword, currentPassword); err != nil {
			return auth.ErrInvalidCredentials
		}

		user.Password = newPassword
		return txStore.Update(ctx, user)
	})

	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			s.logger.Debug("password change for unknown user",
				"user_id", userID)
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.logger.Debug("password change with wrong current password",
				"user_id", userID)
		default:
			s.logger.Error("failed to change password",
				"error", err,
				"user_id", userID)
		}
		return err
	}

	s.logger.Info("password changed",
		"user_id", userID)
	return nil
}

// DeleteAccount removes the user inside a transaction.
func (s *UserServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, userID)
	})

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("attempted to delete non-existent user",
				"user_id", userID)
		} else {
			s.logger.Error("failed to delete user",
				"error", err,
				"user_id", userID)
		}
		return err
	}

	s.logger.Info("user deleted",
		"user_id", userID)
	return nil
}
