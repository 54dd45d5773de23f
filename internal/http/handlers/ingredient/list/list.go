// Package list реализует HTTP-обработчик списка ингредиентов с поиском
// по началу названия без учёта регистра (параметр name).
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы на поиск ингредиентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс поиска ингредиентов.
type Service interface {
	Ingredients(ctx context.Context, name string) ([]models.Ingredient, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список ингредиентов
// @Description Поиск по частичному вхождению в начале названия ингредиента.
// @Tags Ingredients
// @Produce json
// @Param name query string false "Начало названия"
// @Success 200 {array} models.Ingredient
// @Router /ingredients/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ingredient.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.Ingredients(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}
	response.JSON(w, r, http.StatusOK, items)
}
