package recipe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// Aggregate сводит ингредиенты рецептов из корзины в список покупок.
// Строки группируются по названию ингредиента, количества суммируются,
// единица измерения берётся из первой встреченной строки.
// Результат отсортирован по названию, пустая корзина даёт пустую строку.
func Aggregate(lines []models.CartLine) string {
	totals := make(map[string]int, len(lines))
	units := make(map[string]string, len(lines))
	for _, l := range lines {
		if _, ok := units[l.Name]; !ok {
			units[l.Name] = l.Unit
		}
		totals[l.Name] += l.Amount
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, name := range names {
		unit := units[name]
		out = append(out, fmt.Sprintf("%s (%s) — %d %s", name, unit, totals[name], unit))
	}
	return strings.Join(out, "\n")
}
