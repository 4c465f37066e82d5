package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointboard-app/pointboard/internal/domain"
	"github.com/pointboard-app/pointboard/internal/mocks"
	"github.com/pointboard-app/pointboard/internal/service/auth"
	"github.com/pointboard-app/pointboard/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postJSON(t *testing.T, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	registeredUser := &domain.User{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Nickname: "tester",
	}

	tests := []struct {
		name       string
		payload    map[string]interface{}
		serviceErr error
		wantStatus int
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password123",
				"nickname": "tester",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			payload: map[string]interface{}{
				"email":    "taken@example.com",
				"password": "password123",
				"nickname": "tester",
			},
			serviceErr: store.ErrEmailExists,
			wantStatus: http.StatusConflict,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "invalid-email",
				"password": "password123",
				"nickname": "tester",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "short",
				"nickname": "tester",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing nickname",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service failure answers bad request",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password123",
				"nickname": "tester",
			},
			serviceErr: errors.New("connection refused"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userService := &mocks.MockUserService{User: registeredUser, Err: tt.serviceErr}
			handler := NewAuthHandler(userService, testLogger())

			recorder := httptest.NewRecorder()
			handler.Register(recorder, postJSON(t, "/api/auth/register", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp UserResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, registeredUser.ID, resp.ID)
				assert.Equal(t, registeredUser.Email, resp.Email)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Nickname: "tester",
	}

	tests := []struct {
		name       string
		payload    map[string]interface{}
		serviceErr error
		wantStatus int
	}{
		{
			name: "valid credentials",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password123",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown email",
			payload: map[string]interface{}{
				"email":    "nobody@example.com",
				"password": "password123",
			},
			serviceErr: store.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "wrong-password",
			},
			serviceErr: auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"email": "test@example.com",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service failure answers unauthorized",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password123",
			},
			serviceErr: errors.New("connection refused"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userService := &mocks.MockUserService{
				User:  user,
				Token: "test-token",
				Err:   tt.serviceErr,
			}
			handler := NewAuthHandler(userService, testLogger())

			recorder := httptest.NewRecorder()
			handler.Login(recorder, postJSON(t, "/api/auth/login", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, user.ID, resp.UserID)
				assert.Equal(t, "test-token", resp.Token)
			}
		})
	}
}

func TestLoginMalformedBody(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&mocks.MockUserService{}, testLogger())

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/auth/login",
		bytes.NewBufferString("{not json"),
	)
	req = req.WithContext(context.Background())
	recorder := httptest.NewRecorder()

	handler.Login(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
