// Package avatar реализует HTTP-обработчик загрузки (PUT) и удаления (DELETE)
// аватара текущего пользователя. Изображение передаётся строкой base64.
package avatar

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/handlers"
	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Response тело ответа со ссылкой на загруженный аватар.
type Response struct {
	Avatar string `json:"avatar"`
}

// Handler обрабатывает запросы к аватару.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс управления аватаром.
type Service interface {
	SetAvatar(ctx context.Context, viewer models.Viewer, in models.AvatarUpload) (string, error)
	DeleteAvatar(ctx context.Context, viewer models.Viewer) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Загрузка и удаление аватара
// @Tags Users
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body models.AvatarUpload false "Изображение в base64 (только для PUT)"
// @Success 200 {object} Response
// @Success 204
// @Failure 400 {object} response.ValidationErrorResponse "Ошибки валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users/me/avatar/ [put]
// @Router /users/me/avatar/ [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.avatar"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	viewer := middlewarectx.ViewerFromContext(r.Context())

	switch r.Method {
	case http.MethodPut:
		var req models.AvatarUpload
		if !response.DecodeJSON(w, r, log, &req) {
			return
		}
		url, err := h.service.SetAvatar(r.Context(), viewer, req)
		if err != nil {
			response.ServiceError(w, r, log, err, nil)
			return
		}
		log.Info("avatar updated", slog.Int64("user_id", viewer.ID))
		response.JSON(w, r, http.StatusOK, Response{Avatar: url})
	case http.MethodDelete:
		if err := h.service.DeleteAvatar(r.Context(), viewer); err != nil {
			response.ServiceError(w, r, log, err, nil)
			return
		}
		log.Info("avatar deleted", slog.Int64("user_id", viewer.ID))
		response.NoContent(w, r)
	default:
		handlers.MethodNotAllowed(w, r)
	}
}
