// Package relation реализует HTTP-обработчик добавления рецепта в избранное
// или список покупок (POST) и удаления из них (DELETE).
package relation

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

var messages = map[models.Relation]response.Messages{
	models.RelationFavorite: {
		models.ErrAlreadyExists: "Этот рецепт уже в избранном.",
		models.ErrNotPresent:    "Этого рецепта нет в избранном.",
	},
	models.RelationCart: {
		models.ErrAlreadyExists: "Этот рецепт уже в списке покупок.",
		models.ErrNotPresent:    "Этого рецепта нет в списке покупок.",
	},
}

// Handler обрабатывает переключение одной связи пользователя с рецептом.
type Handler struct {
	log      *slog.Logger
	service  Service
	relation models.Relation
}

// Service описывает интерфейс бизнес-логики связей с рецептом.
type Service interface {
	Add(ctx context.Context, viewer models.Viewer, rel models.Relation, id int64) (models.RecipeShort, error)
	Remove(ctx context.Context, viewer models.Viewer, rel models.Relation, id int64) error
}

// New создает Handler для связи rel (models.RelationFavorite или models.RelationCart).
func New(log *slog.Logger, service Service, rel models.Relation) *Handler {
	return &Handler{log: log, service: service, relation: rel}
}

// ServeHTTP godoc
// @Summary Добавить рецепт в избранное или список покупок, удалить из них
// @Tags Recipes
// @Produce json
// @Security TokenAuth
// @Param id path int true "ID рецепта"
// @Success 201 {object} models.RecipeShort
// @Success 204
// @Failure 400 {object} response.ErrorResponse "Рецепт уже добавлен или отсутствует"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Router /recipes/{id}/favorite/ [post]
// @Router /recipes/{id}/favorite/ [delete]
// @Router /recipes/{id}/shopping_cart/ [post]
// @Router /recipes/{id}/shopping_cart/ [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.relation"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("relation", string(h.relation)),
	)

	id, ok := handlers.ID(w, r, log)
	if !ok {
		return
	}
	viewer := middlewarectx.ViewerFromContext(r.Context())

	switch r.Method {
	case http.MethodPost:
		short, err := h.service.Add(r.Context(), viewer, h.relation, id)
		if err != nil {
			response.ServiceError(w, r, log, err, messages[h.relation])
			return
		}
		log.Info("recipe added", slog.Int64("id", id))
		response.JSON(w, r, http.StatusCreated, short)
	case http.MethodDelete:
		if err := h.service.Remove(r.Context(), viewer, h.relation, id); err != nil {
			response.ServiceError(w, r, log, err, messages[h.relation])
			return
		}
		log.Info("recipe removed", slog.Int64("id", id))
		response.NoContent(w, r)
	default:
		handlers.MethodNotAllowed(w, r)
	}
}
