// Package response содержит вспомогательные типы и функции для формирования
// JSON-ответов HTTP-обработчиков: ошибок с полем detail, ошибок валидации
// по полям и сопоставления ошибок сервисов со статусами HTTP.
package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

// Тексты ошибок, которые отдаются клиенту.
const (
	MsgNotFound           = "Страница не найдена."
	MsgInvalidPage        = "Неправильная страница."
	MsgUnauthorized       = "Учетные данные не были предоставлены."
	MsgInvalidToken       = "Недопустимый токен."
	MsgForbidden          = "У вас недостаточно прав для выполнения данного действия."
	MsgMethodNotAllowed   = "Метод \"%s\" не разрешен."
	MsgInvalidJSON        = "Неверный формат JSON."
	MsgInvalidCredentials = "Невозможно войти с предоставленными учетными данными."
	MsgTooManyRequests    = "Запрос был проигнорирован в связи с превышением лимита запросов."
	MsgInternal           = "Внутренняя ошибка сервера."
)

// ErrorResponse тело ответа с ошибкой. Используется и в Swagger-документации.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Страница не найдена."`
}

// ValidationErrorResponse ошибки валидации, сгруппированные по полям.
// Тип нужен только для Swagger-документации.
type ValidationErrorResponse map[string][]string

// Messages задаёт текст detail для ошибок, смысл которых зависит от операции,
// например models.ErrAlreadyExists при добавлении в избранное.
type Messages map[error]string

// Error записывает ответ {"detail": msg} с указанным статусом.
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Detail: msg})
}

// JSON записывает v с указанным статусом.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// NoContent отвечает статусом 204 без тела.
func NoContent(w http.ResponseWriter, r *http.Request) {
	render.NoContent(w, r)
}

// ServiceError сопоставляет ошибку сервиса со статусом HTTP и записывает ответ.
// Неизвестные ошибки логируются и превращаются в 500.
func ServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, messages Messages) {
	if verrs, ok := validation.AsErrors(err); ok {
		log.Info("validation failed", sl.Err(err))
		JSON(w, r, http.StatusBadRequest, verrs)
		return
	}
	for target, msg := range messages {
		if errors.Is(err, target) {
			log.Info("request rejected", sl.Err(err))
			Error(w, r, http.StatusBadRequest, msg)
			return
		}
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		Error(w, r, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, models.ErrUnauthorized):
		Error(w, r, http.StatusUnauthorized, MsgUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		Error(w, r, http.StatusForbidden, MsgForbidden)
	case errors.Is(err, models.ErrInvalidCredentials):
		JSON(w, r, http.StatusBadRequest, validation.Single("non_field_errors", MsgInvalidCredentials))
	case errors.Is(err, models.ErrAlreadyExists),
		errors.Is(err, models.ErrNotPresent),
		errors.Is(err, models.ErrSelfSubscription):
		Error(w, r, http.StatusBadRequest, err.Error())
	default:
		log.Error("request failed", sl.Err(err))
		Error(w, r, http.StatusInternalServerError, MsgInternal)
	}
}

// DecodeJSON читает тело запроса в v. При ошибке отвечает 400 и возвращает false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		Error(w, r, http.StatusBadRequest, MsgInvalidJSON)
		return false
	}
	return true
}
