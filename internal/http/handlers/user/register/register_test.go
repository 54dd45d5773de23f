package register

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, in models.UserRegistration) (models.UserCreated, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.UserCreated), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler(t *testing.T) {
	in := models.UserRegistration{
		Email:     "vpupkin@yandex.ru",
		Username:  "vasya.pupkin",
		FirstName: "Вася",
		LastName:  "Иванов",
		Password:  "Qwerty-Borsch-11",
	}
	body, err := json.Marshal(in)
	require.NoError(t, err)

	tests := []struct {
		name           string
		body           []byte
		setupMock      func(m *MockService)
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name: "успешная регистрация",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, in).Return(models.UserCreated{
					Email: in.Email, ID: 1, Username: in.Username, FirstName: in.FirstName, LastName: in.LastName,
				}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				var got map[string]any
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, "vasya.pupkin", got["username"])
				assert.NotContains(t, got, "password")
			},
		},
		{
			name: "занятый email",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, in).
					Return(models.UserCreated{}, validation.Single("email", validation.MsgEmailTaken)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				var got map[string][]string
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, []string{validation.MsgEmailTaken}, got["email"])
			},
		},
		{
			name:           "некорректный JSON",
			body:           []byte(`[`),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.check != nil {
				tt.check(t, w.Body.Bytes())
			}
			svc.AssertExpectations(t)
		})
	}
}
