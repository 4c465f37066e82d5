package api

import (
	"github.com/google/uuid"
	"github.com/pointboard-app/pointboard/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	Nickname string `json:"nickname"  validate:"required,max=30"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// UserResponse is the public identity view returned by the login check.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Nickname string    `json:"nickname"`
	ImageURL string    `json:"image_url"`
}

// ProfileResponse is the full profile view.
type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Nickname    string    `json:"nickname"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
}

// PointResponse carries the user's point balances.
type PointResponse struct {
	Point      int64 `json:"point"`
	AccumPoint int64 `json:"accum_point"`
}

// CountResponse carries the total user count.
type CountResponse struct {
	Count int64 `json:"count"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
// Updates maps profile field names to their new values; ImageURL is an
// optional extra update kept as its own field to match the upload flow.
type UpdateProfileRequest struct {
	Updates  map[string]string `json:"updates"`
	ImageURL string            `json:"image_url" validate:"omitempty,url"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=1"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

// RankListResponse is one page of the ranking list.
type RankListResponse struct {
	Entries  []domain.RankEntry `json:"entries"`
	Next     *domain.RankCursor `json:"next,omitempty"`
	Complete bool               `json:"complete"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
		ImageURL: u.ImageURL,
	}
}

func newProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		Nickname:    u.Nickname,
		Description: u.Description,
		ImageURL:    u.ImageURL,
	}
}
