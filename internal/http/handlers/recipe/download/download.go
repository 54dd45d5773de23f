// Package download реализует HTTP-обработчик выгрузки списка покупок текстовым файлом.
package download

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Filename имя файла, под которым клиент сохраняет список.
const Filename = "list.txt"

// Handler обрабатывает запросы на скачивание списка покупок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс построения списка покупок.
type Service interface {
	ShoppingList(ctx context.Context, viewer models.Viewer) (string, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Скачать список покупок
// @Description Ингредиенты всех рецептов из списка покупок, суммированные по названию.
// @Tags Recipes
// @Produce plain
// @Security TokenAuth
// @Success 200 {string} string "Файл list.txt"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /recipes/download_shopping_cart/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.download"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	text, err := h.service.ShoppingList(r.Context(), middlewarectx.ViewerFromContext(r.Context()))
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Error("failed to write shopping list", sl.Err(err))
	}
}
