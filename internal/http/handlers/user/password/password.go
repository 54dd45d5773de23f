// Package password реализует HTTP-обработчик смены пароля текущего пользователя.
package password

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы на смену пароля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс смены пароля.
type Service interface {
	ChangePassword(ctx context.Context, viewer models.Viewer, in models.PasswordChange) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Смена пароля
// @Tags Users
// @Accept json
// @Security TokenAuth
// @Param request body models.PasswordChange true "Текущий и новый пароль"
// @Success 204
// @Failure 400 {object} response.ValidationErrorResponse "Ошибки валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users/set_password/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.password"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.PasswordChange
	if !response.DecodeJSON(w, r, log, &req) {
		return
	}
	viewer := middlewarectx.ViewerFromContext(r.Context())
	if err := h.service.ChangePassword(r.Context(), viewer, req); err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	log.Info("password changed", slog.Int64("user_id", viewer.ID))
	response.NoContent(w, r)
}
