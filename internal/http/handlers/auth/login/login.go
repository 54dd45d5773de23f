// Package login реализует HTTP-обработчик получения токена доступа по email и паролю.
package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Response тело успешного ответа.
type Response struct {
	AuthToken string `json:"auth_token"`
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис аутентификации
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, in models.Credentials) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить токен авторизации
// @Description Проверяет email и пароль и выдаёт токен доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.Credentials true "Учетные данные пользователя"
// @Success 200 {object} Response
// @Failure 400 {object} response.ValidationErrorResponse "Ошибка валидации или неверные учетные данные"
// @Router /auth/token/login/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Credentials
	if !response.DecodeJSON(w, r, log, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		response.ServiceError(w, r, log, err, nil)
		return
	}

	log.Info("login success")
	response.JSON(w, r, http.StatusOK, Response{AuthToken: token})
}
