// Package list реализует HTTP-обработчик постраничного списка пользователей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/paginate"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы на получение списка пользователей.
type Handler struct {
	log       *slog.Logger
	service   Service
	paginator *paginate.Paginator
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	List(ctx context.Context, viewer models.Viewer, limit, offset int) ([]models.UserProfile, int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, paginator *paginate.Paginator) *Handler {
	return &Handler{log: log, service: service, paginator: paginator}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Количество объектов на странице"
// @Success 200 {object} models.Page[models.UserProfile]
// @Failure 404 {object} response.ErrorResponse "Неправильная страница"
// @Router /users/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	params, err := h.paginator.Params(r)
	if err != nil {
		response.Error(w, r, http.StatusNotFound, response.MsgInvalidPage)
		return
	}

	users, total, err := h.service.List(r.Context(), middlewarectx.ViewerFromContext(r.Context()), params.Limit, params.Offset())
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	page, err := paginate.Page(h.paginator, r, params, total, users)
	if err != nil {
		response.Error(w, r, http.StatusNotFound, response.MsgInvalidPage)
		return
	}
	response.JSON(w, r, http.StatusOK, page)
}
