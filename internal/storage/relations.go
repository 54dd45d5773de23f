package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

type relationTable struct {
	table  string
	target string
}

var relationTables = map[models.Relation]relationTable{
	models.RelationFavorite:     {table: "favorites", target: "recipe_id"},
	models.RelationCart:         {table: "shopping_cart", target: "recipe_id"},
	models.RelationSubscription: {table: "subscriptions", target: "author_id"},
}

func lookupRelation(rel models.Relation) (relationTable, error) {
	t, ok := relationTables[rel]
	if !ok {
		return relationTable{}, fmt.Errorf("unknown relation %q", rel)
	}
	return t, nil
}

// AddRelation добавляет targetID в набор rel пользователя userID.
// Если связь уже существует, возвращает models.ErrAlreadyExists:
// вставка с ON CONFLICT DO NOTHING не затрагивает строк.
func (s *Storage) AddRelation(ctx context.Context, rel models.Relation, userID, targetID int64) error {
	const op = "storage.AddRelation"
	t, err := lookupRelation(rel)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO `+t.table+` (user_id, `+t.target+`) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, targetID)
	if err != nil {
		return wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrAlreadyExists)
	}
	return nil
}

// RemoveRelation удаляет targetID из набора rel пользователя userID.
// Если связи не было, возвращает models.ErrNotPresent.
func (s *Storage) RemoveRelation(ctx context.Context, rel models.Relation, userID, targetID int64) error {
	const op = "storage.RemoveRelation"
	t, err := lookupRelation(rel)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM `+t.table+` WHERE user_id = $1 AND `+t.target+` = $2`,
		userID, targetID)
	if err != nil {
		return wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotPresent)
	}
	return nil
}

// Subscriptions возвращает страницу авторов, на которых подписан userID, и их общее количество.
func (s *Storage) Subscriptions(ctx context.Context, userID int64, limit, offset int) ([]models.UserRecord, int, error) {
	const op = "storage.Subscriptions"
	var total int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, wrap(op, err)
	}
	rows, err := s.DB.QueryContext(ctx, userSelect+`
		JOIN subscriptions sub ON sub.author_id = u.id AND sub.user_id = $1
		ORDER BY u.id
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, wrap(op, err)
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, wrap(op, err)
	}
	return users, total, nil
}
