// Package list реализует HTTP-обработчик списка тегов. Список не разбивается на страницы.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler обрабатывает запросы на получение всех тегов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения тегов.
type Service interface {
	Tags(ctx context.Context) ([]models.Tag, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список тегов
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tag.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tags, err := h.service.Tags(r.Context())
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}
	response.JSON(w, r, http.StatusOK, tags)
}
