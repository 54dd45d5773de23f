package models

// Page страница списка с общим количеством элементов и ссылками на соседние страницы.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
