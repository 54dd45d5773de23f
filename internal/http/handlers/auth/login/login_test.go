package login

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, in models.Credentials) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	creds := models.Credentials{Email: "chef@example.com", Password: "Solyanka-77"}

	tests := []struct {
		name           string
		requestBody    string
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:        "valid login",
			requestBody: `{"email":"chef@example.com","password":"Solyanka-77"}`,
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, creds).Return("tok", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"auth_token":"tok"}`,
		},
		{
			name:        "invalid credentials",
			requestBody: `{"email":"chef@example.com","password":"Solyanka-77"}`,
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, creds).Return("", models.ErrInvalidCredentials).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"non_field_errors"`,
		},
		{
			name:        "validation error",
			requestBody: `{"email":"chef"}`,
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, models.Credentials{Email: "chef"}).
					Return("", validation.Single("password", validation.MsgRequired)).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"password"`,
		},
		{
			name:           "invalid json",
			requestBody:    `{"email":`,
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"detail"`,
		},
		{
			name:        "service failure",
			requestBody: `{"email":"chef@example.com","password":"Solyanka-77"}`,
			setupMock: func(m *AuthServiceMock) {
				m.On("Login", mock.Anything, creds).Return("", errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `"detail"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)
			handler := New(newNoopLogger(), authMock)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/token/login", bytes.NewBufferString(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "test-request-id"))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			if tt.wantStatusCode == http.StatusOK {
				var resp Response
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "tok", resp.AuthToken)
			}
			authMock.AssertExpectations(t)
		})
	}
}
