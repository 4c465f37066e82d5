package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pointboard-app/pointboard/internal/api/shared"
	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/redact"
	"github.com/pointboard-app/pointboard/internal/service"
	"github.com/pointboard-app/pointboard/internal/service/auth"
	"github.com/pointboard-app/pointboard/internal/store"
)

// UserHandler handles the authenticated user endpoints: login check,
// profile read/update/delete, password change, point and count lookups.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// LoginCheck handles GET /users/me: confirms the session is valid and
// returns the caller's identity.
func (h *UserHandler) LoginCheck(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// GetProfile handles GET /users/me/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProfileResponse(user))
}

// UpdateProfile handles PUT /users/me/profile. The fields land one UPDATE at
// a time inside a single transaction; a write failure answers 500 and leaves
// no field changed.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.userService.UpdateProfile(r.Context(), userID, req.Updates, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrUpdateFailed):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid profile update")
		default:
			h.logger.Error("profile update failed",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", userID.String()))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "updated"})
}

// ChangePassword handles PUT /users/me/password. A wrong current password
// answers 401 in the same way a failed login does.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req ChangePasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.userService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrInvalidCredentials):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, domain.ErrPasswordTooShort), errors.Is(err, domain.ErrPasswordTooLong):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid new password")
		default:
			h.logger.Error("password change failed",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", userID.String()))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "password changed"})
}

// DeleteAccount handles DELETE /users/me.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("account deletion failed",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetPoint handles GET /users/me/point.
func (h *UserHandler) GetPoint(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	point, accumPoint, err := h.userService.GetPoint(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("point lookup failed",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to retrieve points")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PointResponse{
		Point:      point,
		AccumPoint: accumPoint,
	})
}

// GetCount handles GET /users/count.
func (h *UserHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	count, err := h.userService.CountUsers(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("user count failed",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to count users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: count})
}
