// Package read реализует HTTP-обработчик получения ингредиента по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/handlers"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы на получение ингредиента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения ингредиента.
type Service interface {
	Ingredient(ctx context.Context, id int64) (models.Ingredient, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получение ингредиента
// @Tags Ingredients
// @Produce json
// @Param id path int true "ID ингредиента"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} response.ErrorResponse "Ингредиент не найден"
// @Router /ingredients/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ingredient.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := handlers.ID(w, r, log)
	if !ok {
		return
	}
	item, err := h.service.Ingredient(r.Context(), id)
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}
	response.JSON(w, r, http.StatusOK, item)
}
