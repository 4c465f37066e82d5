package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/pointboard-app/pointboard/internal/api/shared"
)

// getUserIDFromContext extracts the authenticated user's UUID from the request
// context. The auth middleware is responsible for placing it there.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
