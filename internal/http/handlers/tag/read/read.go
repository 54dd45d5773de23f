// Package read реализует HTTP-обработчик получения тега по ID.
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

// Handler обрабатывает запросы на получение тега.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения тега.
type Service interface {
	Tag(ctx context.Context, id int64) (models.Tag, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получение тега
// @Tags Tags
// @Produce json
// @Param id path int true "ID тега"
// @Success 200 {object} models.Tag
// @Failure 404 {object} response.ErrorResponse "Тег не найден"
// @Router /tags/{id}/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tag.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := handlers.ID(w, r, log)
	if !ok {
		return
	}
	tag, err := h.service.Tag(r.Context(), id)
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}
	response.JSON(w, r, http.StatusOK, tag)
}
