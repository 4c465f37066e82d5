package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User field validation errors.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyNickname       = errors.New("nickname cannot be empty")
	ErrNicknameTooLong     = errors.New("nickname must be at most 30 characters long")
	ErrDescriptionTooLong  = errors.New("description must be at most 500 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Password length bounds. The upper bound is bcrypt's practical input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User is a registered account. Point is the spendable balance; AccumPoint is
// the lifetime total and is what the ranking list orders by alongside Point.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, present only transiently during registration/updates
	HashedPassword string    `json:"-"` // Never exposed in JSON
	Nickname       string    `json:"nickname"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url"`
	Point          int64     `json:"point"`
	AccumPoint     int64     `json:"accum_point"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser assembles a user for registration with a fresh ID and timestamps.
// The plaintext password is carried on the struct; the store layer hashes it
// before anything touches the database.
func NewUser(email, password, nickname, imageURL string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		Nickname:  nickname,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user's fields, returning the first violation found.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Nickname == "" {
		return ErrEmptyNickname
	}
	if len(u.Nickname) > 30 {
		return ErrNicknameTooLong
	}
	if len(u.Description) > 500 {
		return ErrDescriptionTooLong
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the database carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat is a structural sanity check: exactly one local part, a
// domain with at least one interior dot. Request-level validation uses the
// validator package's email rule; this guards direct construction paths.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
