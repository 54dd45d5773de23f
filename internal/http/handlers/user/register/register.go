// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает email, username, имя, фамилию и пароль, передаёт их сервису
// и возвращает данные созданного пользователя без пароля со статусом 201.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Handler управляет HTTP-запросами регистрации.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис пользователей
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, in models.UserRegistration) (models.UserCreated, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.UserRegistration true "Данные пользователя"
// @Success 201 {object} models.UserCreated
// @Failure 400 {object} response.ValidationErrorResponse "Ошибки валидации"
// @Router /users/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UserRegistration
	if !response.DecodeJSON(w, r, log, &req) {
		return
	}

	created, err := h.service.Register(r.Context(), req)
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	log.Info("user registered", slog.Int64("id", created.ID))
	response.JSON(w, r, http.StatusCreated, created)
}
