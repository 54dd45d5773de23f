// Package subscribe реализует HTTP-обработчик подписки на автора (POST)
// и отписки от него (DELETE).
package subscribe

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

var messages = response.Messages{
	models.ErrSelfSubscription: "Вы не можете подписаться на себя самого.",
	models.ErrAlreadyExists:    "Вы уже подписаны на данного пользователя.",
	models.ErrNotPresent:       "Вы не подписаны на данного пользователя.",
}

// Handler обрабатывает запросы подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подписок.
type Service interface {
	Subscribe(ctx context.Context, viewer models.Viewer, authorID int64, recipesLimit int) (models.UserWithRecipes, error)
	Unsubscribe(ctx context.Context, viewer models.Viewer, authorID int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подписаться на пользователя или отписаться от него
// @Tags Users
// @Produce json
// @Security TokenAuth
// @Param id path int true "ID автора"
// @Param recipes_limit query int false "Количество рецептов автора в ответе"
// @Success 201 {object} models.UserWithRecipes
// @Success 204
// @Failure 400 {object} response.ErrorResponse "Подписка невозможна"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Автор не найден"
// @Router /users/{id}/subscribe/ [post]
// @Router /users/{id}/subscribe/ [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authorID, ok := handlers.ID(w, r, log)
	if !ok {
		return
	}
	viewer := middlewarectx.ViewerFromContext(r.Context())

	switch r.Method {
	case http.MethodPost:
		author, err := h.service.Subscribe(r.Context(), viewer, authorID, handlers.RecipesLimit(r))
		if err != nil {
			response.ServiceError(w, r, log, err, messages)
			return
		}
		log.Info("subscribed", slog.Int64("author_id", authorID))
		response.JSON(w, r, http.StatusCreated, author)
	case http.MethodDelete:
		if err := h.service.Unsubscribe(r.Context(), viewer, authorID); err != nil {
			response.ServiceError(w, r, log, err, messages)
			return
		}
		log.Info("unsubscribed", slog.Int64("author_id", authorID))
		response.NoContent(w, r)
	default:
		handlers.MethodNotAllowed(w, r)
	}
}
