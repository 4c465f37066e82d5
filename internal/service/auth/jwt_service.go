// Package auth provides the token and password collaborators consumed by the
// service layer.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pointboard-app/pointboard/internal/domain"
)

// JWTService defines operations for managing JWT session tokens.
type JWTService interface {
	// GenerateToken creates a signed session token asserting the given
	// user's identity. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims, or returns an error (expired, invalid signature, malformed).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded payload of a session token. Alongside the registered
// claims it carries the caller's identity: user id, email, nickname, and
// description.
type Claims struct {
	UserID      uuid.UUID `json:"uid,omitempty"`
	Email       string    `json:"email,omitempty"`
	Nickname    string    `json:"nickname,omitempty"`
	Description string    `json:"description,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
