// Package create реализует HTTP-обработчик создания рецепта.
//
// Handler принимает JSON с тегами, ингредиентами, изображением в base64,
// названием, описанием и временем приготовления, передаёт его сервису
// от имени текущего пользователя и возвращает созданный рецепт со статусом 201.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler управляет HTTP-запросами на создание рецептов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики рецептов
}

// Service описывает интерфейс бизнес-логики создания рецепта.
type Service interface {
	Create(ctx context.Context, viewer models.Viewer, in models.RecipeInput) (models.Recipe, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Создание рецепта
// @Description Доступно только авторизованному пользователю.
// @Tags Recipes
// @Accept  json
// @Produce  json
// @Security TokenAuth
// @Param request body models.RecipeInput true "Данные рецепта"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} response.ValidationErrorResponse "Ошибки валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /recipes/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RecipeInput
	if !response.DecodeJSON(w, r, log, &req) {
		return
	}

	recipe, err := h.service.Create(r.Context(), middlewarectx.ViewerFromContext(r.Context()), req)
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	log.Info("recipe created", slog.Int64("id", recipe.ID))
	response.JSON(w, r, http.StatusCreated, recipe)
}
