// Package update реализует HTTP-обработчик частичного обновления рецепта (PATCH).
// Изменять рецепт может только его автор или администратор.
package update

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

// Handler обрабатывает запросы на обновление рецепта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления рецепта.
type Service interface {
	Update(ctx context.Context, viewer models.Viewer, id int64, in models.RecipeInput) (models.Recipe, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновление рецепта
// @Description Доступно только автору рецепта или администратору. Отсутствующие поля не изменяются.
// @Tags Recipes
// @Accept  json
// @Produce  json
// @Security TokenAuth
// @Param id path int true "ID рецепта"
// @Param request body models.RecipeInput true "Изменяемые поля"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} response.ValidationErrorResponse "Ошибки валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Рецепт не найден"
// @Router /recipes/{id}/ [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := handlers.ID(w, r, log)
	if !ok {
		return
	}
	var req models.RecipeInput
	if !response.DecodeJSON(w, r, log, &req) {
		return
	}

	recipe, err := h.service.Update(r.Context(), middlewarectx.ViewerFromContext(r.Context()), id, req)
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	log.Info("recipe updated", slog.Int64("id", id))
	response.JSON(w, r, http.StatusOK, recipe)
}
