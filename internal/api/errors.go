package api

import (
	"errors"
	"net/http"

	"github.com/pointboard-app/pointboard/internal/api/shared"
	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/service/auth"
	"github.com/pointboard-app/pointboard/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. The five
// error kinds the services surface — conflict, unauthorized, bad request,
// not found, internal — each land on a distinct status here, so internal
// error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, store.ErrInvalidEntity),
		isUserValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, domain.ErrInvalidCursor):
		return "Invalid ranking cursor"
	case MapErrorToStatusCode(err) == http.StatusBadRequest:
		return "Invalid request data"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the response for a service-layer error: mapped
// status, safe message (overridable), full error only in the logs.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// isUserValidationError matches the field-level validation sentinels the
// domain User emits, which don't all wrap domain.ErrValidation.
func isUserValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrEmptyUserID,
		domain.ErrEmptyEmail,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrEmptyNickname,
		domain.ErrNicknameTooLong,
		domain.ErrDescriptionTooLong,
		domain.ErrEmptyHashedPassword,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
