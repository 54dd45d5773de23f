// Package remove реализует HTTP-обработчик удаления рецепта.
// Удалять рецепт может только его автор или администратор.
package remove

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

// Handler обрабатывает запросы на удаление рецепта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления рецепта.
type Service interface {
	Delete(ctx context.Context, viewer models.Viewer, id int64) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление рецепта
// @Description Доступно только автору рецепта или администратору.
// @Tags Recipes
// @Security TokenAuth
// @Param id path int true "ID рецепта"
// @Success 204
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Router /recipes/{id}/ [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := handlers.ID(w, r, log)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), middlewarectx.ViewerFromContext(r.Context()), id); err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	log.Info("recipe deleted", slog.Int64("id", id))
	response.NoContent(w, r)
}
