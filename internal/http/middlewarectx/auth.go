// Package middlewarectx содержит HTTP middleware: определение пользователя по токену
// доступа, проверку аутентификации, ограничение частоты запросов и метрики.
//
// Authentication читает заголовок Authorization вида "Token <t>" или "Bearer <t>",
// проверяет токен через сервис аутентификации и кладёт models.Viewer в контекст.
// Запрос без заголовка обрабатывается от имени анонимного посетителя.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// ViewerKey ключ models.Viewer в контексте
	ViewerKey Key = "viewer"
	// TokenKey ключ исходного токена в контексте
	TokenKey Key = "token"
)

var schemes = []string{"Token ", "Bearer "}

// Authenticator описывает сервис, определяющий пользователя по токену.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Viewer, error)
}

// Authentication возвращает middleware, определяющий пользователя запроса.
// Некорректный или отозванный токен даёт 401.
func Authentication(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authentication"
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token, ok := extractToken(header)
			if !ok {
				log.Info("unsupported authorization header")
				response.Error(w, r, http.StatusUnauthorized, response.MsgInvalidToken)
				return
			}

			viewer, err := auth.Authenticate(r.Context(), token)
			if errors.Is(err, models.ErrUnauthorized) {
				log.Info("invalid or revoked token")
				response.Error(w, r, http.StatusUnauthorized, response.MsgInvalidToken)
				return
			}
			if err != nil {
				log.Error("failed to authenticate", sl.Err(err))
				response.Error(w, r, http.StatusInternalServerError, response.MsgInternal)
				return
			}

			ctx := context.WithValue(r.Context(), ViewerKey, viewer)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth пропускает только аутентифицированные запросы, остальным отвечает 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ViewerFromContext(r.Context()).Authenticated() {
			response.Error(w, r, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ViewerFromContext возвращает пользователя запроса. Для анонимного запроса
// возвращается нулевое значение.
func ViewerFromContext(ctx context.Context) models.Viewer {
	viewer, _ := ctx.Value(ViewerKey).(models.Viewer)
	return viewer
}

// TokenFromContext возвращает токен, с которым пришёл запрос.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}

// WithViewer возвращает контекст с пользователем запроса.
func WithViewer(ctx context.Context, viewer models.Viewer) context.Context {
	return context.WithValue(ctx, ViewerKey, viewer)
}

func extractToken(header string) (string, bool) {
	for _, scheme := range schemes {
		if strings.HasPrefix(header, scheme) {
			token := strings.TrimSpace(strings.TrimPrefix(header, scheme))
			return token, token != ""
		}
	}
	return "", false
}
