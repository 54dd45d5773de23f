// Package read реализует HTTP-обработчик получения рецепта по ID.
package read

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

// Handler обрабатывает запросы на получение рецепта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения рецепта.
type Service interface {
	Get(ctx context.Context, viewer models.Viewer, id int64) (models.Recipe, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получение рецепта
// @Tags Recipes
// @Produce json
// @Param id path int true "ID рецепта"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Router /recipes/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := handlers.ID(w, r, log)
	if !ok {
		return
	}
	recipe, err := h.service.Get(r.Context(), middlewarectx.ViewerFromContext(r.Context()), id)
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}
	response.JSON(w, r, http.StatusOK, recipe)
}
