package subscribe

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(ctx context.Context, viewer models.Viewer, authorID int64, recipesLimit int) (models.UserWithRecipes, error) {
	args := m.Called(ctx, viewer, authorID, recipesLimit)
	return args.Get(0).(models.UserWithRecipes), args.Error(1)
}

func (m *MockService) Unsubscribe(ctx context.Context, viewer models.Viewer, authorID int64) error {
	return m.Called(ctx, viewer, authorID).Error(0)
}

func TestSubscribeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	viewer := models.Viewer{ID: 1, Role: models.RoleUser}

	tests := []struct {
		name           string
		method         string
		url            string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "подписка с ограничением рецептов",
			method: http.MethodPost,
			url:    "/api/users/2/subscribe?recipes_limit=1",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, viewer, int64(2), 1).Return(models.UserWithRecipes{
					UserProfile:  models.UserProfile{ID: 2, IsSubscribed: true},
					Recipes:      []models.RecipeShort{{ID: 7}},
					RecipesCount: 3,
				}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"recipes_count":3`,
		},
		{
			name:   "подписка без ограничения",
			method: http.MethodPost,
			url:    "/api/users/2/subscribe",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, viewer, int64(2), -1).
					Return(models.UserWithRecipes{UserProfile: models.UserProfile{ID: 2}}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "подписка на себя",
			method: http.MethodPost,
			url:    "/api/users/2/subscribe",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, viewer, int64(2), -1).
					Return(models.UserWithRecipes{}, models.ErrSelfSubscription).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Вы не можете подписаться на себя самого.",
		},
		{
			name:   "повторная подписка",
			method: http.MethodPost,
			url:    "/api/users/2/subscribe",
			setupMock: func(m *MockService) {
				m.On("Subscribe", mock.Anything, viewer, int64(2), -1).
					Return(models.UserWithRecipes{}, models.ErrAlreadyExists).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Вы уже подписаны на данного пользователя.",
		},
		{
			name:   "отписка",
			method: http.MethodDelete,
			url:    "/api/users/2/subscribe",
			setupMock: func(m *MockService) {
				m.On("Unsubscribe", mock.Anything, viewer, int64(2)).Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "отписка без подписки",
			method: http.MethodDelete,
			url:    "/api/users/2/subscribe",
			setupMock: func(m *MockService) {
				m.On("Unsubscribe", mock.Anything, viewer, int64(2)).Return(models.ErrNotPresent).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Вы не подписаны на данного пользователя.",
		},
		{
			name:   "автор не найден",
			method: http.MethodDelete,
			url:    "/api/users/2/subscribe",
			setupMock: func(m *MockService) {
				m.On("Unsubscribe", mock.Anything, viewer, int64(2)).Return(models.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(tt.method, tt.url, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "2")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithViewer(ctx, viewer))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
