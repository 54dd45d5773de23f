// Package link реализует HTTP-обработчик получения абсолютной ссылки на рецепт.
package link

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/handlers"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
)

// Response тело ответа со ссылкой.
type Response struct {
	ShortLink string `json:"short-link"`
}

// Handler обрабатывает запросы на получение ссылки.
type Handler struct {
	log     *slog.Logger
	service Service
	baseURL string
}

// Service описывает проверку существования рецепта.
type Service interface {
	Exists(ctx context.Context, id int64) error
}

// New создает новый Handler. baseURL задаёт внешний адрес сервиса.
func New(log *slog.Logger, service Service, baseURL string) *Handler {
	return &Handler{log: log, service: service, baseURL: strings.TrimRight(baseURL, "/")}
}

// ServeHTTP godoc
// @Summary Получить короткую ссылку на рецепт
// @Tags Recipes
// @Produce json
// @Param id path int true "ID рецепта"
// @Success 200 {object} Response
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Router /recipes/{id}/get-link/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.link"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := handlers.ID(w, r, log)
	if !ok {
		return
	}
	if err := h.service.Exists(r.Context(), id); err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}
	response.JSON(w, r, http.StatusOK, Response{
		ShortLink: fmt.Sprintf("%s/api/recipes/%d/", h.baseURL, id),
	})
}
