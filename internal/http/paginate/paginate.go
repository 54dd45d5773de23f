// Package paginate разбирает параметры постраничной выдачи page и limit
// и собирает ответ со ссылками на соседние страницы.
package paginate

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// ErrInvalidPage возвращается, если номер страницы не является положительным числом.
var ErrInvalidPage = errors.New("invalid page")

// Params разобранные параметры страницы.
type Params struct {
	Page  int
	Limit int
}

// Offset возвращает смещение первой записи страницы.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginator хранит размеры страниц и базовый адрес для ссылок next/previous.
type Paginator struct {
	baseURL  string
	pageSize int
	maxSize  int
}

// New создаёт Paginator. baseURL задаёт внешний адрес сервиса без завершающего слэша.
func New(baseURL string, pageSize, maxSize int) *Paginator {
	return &Paginator{
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		maxSize:  maxSize,
	}
}

// Params читает page и limit из запроса. Некорректный limit заменяется
// размером страницы по умолчанию, значения больше максимума обрезаются.
func (p *Paginator) Params(r *http.Request) (Params, error) {
	q := r.URL.Query()
	out := Params{Page: 1, Limit: p.pageSize}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, ErrInvalidPage
		}
		out.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			out.Limit = min(limit, p.maxSize)
		}
	}
	return out, nil
}

// Page собирает ответ со ссылками на соседние страницы. Номер страницы
// за пределами выдачи (кроме первой) даёт ErrInvalidPage.
func Page[T any](p *Paginator, r *http.Request, params Params, total int, results []T) (models.Page[T], error) {
	if params.Page > 1 && params.Offset() >= total {
		return models.Page[T]{}, ErrInvalidPage
	}
	if results == nil {
		results = []T{}
	}
	out := models.Page[T]{Count: total, Results: results}
	if params.Offset()+len(results) < total {
		next := p.link(r, params.Page+1)
		out.Next = &next
	}
	if params.Page > 1 {
		prev := p.link(r, params.Page-1)
		out.Previous = &prev
	}
	return out, nil
}

func (p *Paginator) link(r *http.Request, page int) string {
	q := r.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
	return p.baseURL + u.String()
}
