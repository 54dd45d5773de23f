// Package list реализует HTTP-обработчик постраничного списка рецептов с фильтрами.
//
// Поддерживаемые параметры: author (ID автора), tags (slug, может повторяться,
// рецепт подходит при совпадении любого тега), is_favorited и is_in_shopping_cart
// (действуют только для аутентифицированного пользователя), page и limit.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/paginate"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

// Handler обрабатывает запросы на получение списка рецептов.
type Handler struct {
	log       *slog.Logger
	service   Service
	paginator *paginate.Paginator
}

// Service описывает интерфейс бизнес-логики списка рецептов.
type Service interface {
	List(ctx context.Context, viewer models.Viewer, f models.RecipeFilter, limit, offset int) ([]models.Recipe, int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, paginator *paginate.Paginator) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		paginator: paginator,
	}
}

// ServeHTTP godoc
// @Summary Список рецептов
// @Description Страница доступна всем пользователям. Доступна фильтрация по избранному, автору, списку покупок и тегам.
// @Tags Recipes
// @Produce json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Количество объектов на странице"
// @Param author query int false "ID автора"
// @Param tags query []string false "Slug тегов" collectionFormat(multi)
// @Param is_favorited query int false "1: только избранное"
// @Param is_in_shopping_cart query int false "1: только рецепты из списка покупок"
// @Success 200 {object} models.Page[models.Recipe]
// @Failure 400 {object} response.ValidationErrorResponse "Некорректный фильтр"
// @Failure 404 {object} response.ErrorResponse "Неправильная страница"
// @Router /recipes/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recipe.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	params, err := h.paginator.Params(r)
	if err != nil {
		response.Error(w, r, http.StatusNotFound, response.MsgInvalidPage)
		return
	}
	filter, errs := parseFilter(r)
	if err := errs.OrNil(); err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	viewer := middlewarectx.ViewerFromContext(r.Context())
	recipes, total, err := h.service.List(r.Context(), viewer, filter, params.Limit, params.Offset())
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	page, err := paginate.Page(h.paginator, r, params, total, recipes)
	if err != nil {
		response.Error(w, r, http.StatusNotFound, response.MsgInvalidPage)
		return
	}
	response.JSON(w, r, http.StatusOK, page)
}

func parseFilter(r *http.Request) (models.RecipeFilter, validation.Errors) {
	q := r.URL.Query()
	errs := validation.Errors{}
	f := models.RecipeFilter{
		Tags:             q["tags"],
		IsFavorited:      parseBool(q.Get("is_favorited")),
		IsInShoppingCart: parseBool(q.Get("is_in_shopping_cart")),
	}
	if raw := q.Get("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errs.Add("author", validation.MsgInvalid)
		} else {
			f.AuthorID = id
		}
	}
	return f, errs
}

func parseBool(raw string) bool {
	switch raw {
	case "1", "true", "True":
		return true
	}
	return false
}
