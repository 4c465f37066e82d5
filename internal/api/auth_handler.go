package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pointboard-app/pointboard/internal/api/shared"
	"github.com/pointboard-app/pointboard/internal/redact"
	"github.com/pointboard-app/pointboard/internal/service"
	"github.com/pointboard-app/pointboard/internal/service/auth"
	"github.com/pointboard-app/pointboard/internal/store"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the /auth/register endpoint. A taken email answers 409;
// every other registration failure answers 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password, req.Nickname, req.ImageURL)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		// Registration's fallback error kind is a bad request, not a 500.
		h.logger.Warn("registration failed",
			slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to register")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		ImageURL: user.ImageURL,
	})
}

// Login handles the /auth/login endpoint. An unknown email answers 404, a
// wrong password (or any unexpected failure) answers 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		default:
			h.logger.Error("login failed",
				slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Failed to authenticate")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID: user.ID,
		Token:  token,
	})
}
