// Package subscriptions реализует HTTP-обработчик постраничного списка авторов,
// на которых подписан текущий пользователь, вместе с их рецептами.
package subscriptions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/handlers"
	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/paginate"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы списка подписок.
type Handler struct {
	log       *slog.Logger
	service   Service
	paginator *paginate.Paginator
}

// Service описывает интерфейс чтения подписок.
type Service interface {
	Subscriptions(ctx context.Context, viewer models.Viewer, limit, offset, recipesLimit int) ([]models.UserWithRecipes, int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, paginator *paginate.Paginator) *Handler {
	return &Handler{log: log, service: service, paginator: paginator}
}

// ServeHTTP godoc
// @Summary Мои подписки
// @Tags Users
// @Produce json
// @Security TokenAuth
// @Param page query int false "Номер страницы"
// @Param limit query int false "Количество объектов на странице"
// @Param recipes_limit query int false "Количество рецептов каждого автора"
// @Success 200 {object} models.Page[models.UserWithRecipes]
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Неправильная страница"
// @Router /users/subscriptions/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.subscriptions"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	params, err := h.paginator.Params(r)
	if err != nil {
		response.Error(w, r, http.StatusNotFound, response.MsgInvalidPage)
		return
	}

	authors, total, err := h.service.Subscriptions(r.Context(), middlewarectx.ViewerFromContext(r.Context()),
		params.Limit, params.Offset(), handlers.RecipesLimit(r))
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	page, err := paginate.Page(h.paginator, r, params, total, authors)
	if err != nil {
		response.Error(w, r, http.StatusNotFound, response.MsgInvalidPage)
		return
	}
	response.JSON(w, r, http.StatusOK, page)
}
