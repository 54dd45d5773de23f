// Package handlers содержит общие для HTTP-обработчиков функции разбора URL.
// Сами обработчики лежат во вложенных пакетах по ресурсам и действиям.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
)

// ID извлекает положительный идентификатор из параметра маршрута {id}.
// Некорректное значение даёт 404, как и отсутствующий объект.
func ID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		log.Info("invalid id in url", slog.String("id", raw), sl.Err(err))
		response.Error(w, r, http.StatusNotFound, response.MsgNotFound)
		return 0, false
	}
	return id, true
}

// RecipesLimit читает параметр recipes_limit. Отсутствующее, нечисловое
// или отрицательное значение означает «без ограничения» и возвращается как -1.
func RecipesLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("recipes_limit"))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// MethodNotAllowed отвечает 405 на любой запрос.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Error(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(response.MsgMethodNotAllowed, r.Method))
}
