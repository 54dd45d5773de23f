package storage

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// ListTags возвращает все теги, упорядоченные по идентификатору.
func (s *Storage) ListTags(ctx context.Context) ([]models.Tag, error) {
	const op = "storage.ListTags"
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, slug FROM tags ORDER BY id`)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, wrap(op, err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return tags, nil
}

// TagByID возвращает тег по идентификатору.
func (s *Storage) TagByID(ctx context.Context, id int64) (models.Tag, error) {
	const op = "storage.TagByID"
	var t models.Tag
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, slug FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return models.Tag{}, wrap(op, err)
	}
	return t, nil
}

// ListIngredients возвращает ингредиенты, название которых начинается с prefix
// без учёта регистра. Пустой prefix возвращает весь справочник.
func (s *Storage) ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	const op = "storage.ListIngredients"
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, measurement_unit FROM ingredients
		WHERE lower(name) LIKE lower($1) || '%'
		ORDER BY name, id`, escapeLike(prefix))
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	items := make([]models.Ingredient, 0)
	for rows.Next() {
		var i models.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, wrap(op, err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return items, nil
}

// IngredientByID возвращает ингредиент по идентификатору.
func (s *Storage) IngredientByID(ctx context.Context, id int64) (models.Ingredient, error) {
	const op = "storage.IngredientByID"
	var i models.Ingredient
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`, id).
		Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	if err != nil {
		return models.Ingredient{}, wrap(op, err)
	}
	return i, nil
}

// MissingTags возвращает те идентификаторы из ids, которых нет в справочнике тегов.
func (s *Storage) MissingTags(ctx context.Context, ids []int64) ([]int64, error) {
	const op = "storage.MissingTags"
	missing, err := s.missing(ctx, "tags", ids)
	if err != nil {
		return nil, wrap(op, err)
	}
	return missing, nil
}

// MissingIngredients возвращает те идентификаторы из ids, которых нет в справочнике ингредиентов.
func (s *Storage) MissingIngredients(ctx context.Context, ids []int64) ([]int64, error) {
	const op = "storage.MissingIngredients"
	missing, err := s.missing(ctx, "ingredients", ids)
	if err != nil {
		return nil, wrap(op, err)
	}
	return missing, nil
}

// missing выполняет запрос к таблице table, имя которой задаётся только внутри пакета.
func (s *Storage) missing(ctx context.Context, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT x.id FROM unnest($1::bigint[]) WITH ORDINALITY AS x(id, ord)
		WHERE NOT EXISTS (SELECT 1 FROM `+table+` t WHERE t.id = x.id)
		ORDER BY x.ord`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		missing = append(missing, id)
	}
	return missing, rows.Err()
}

// UpsertIngredients добавляет ингредиенты в справочник одной транзакцией.
// Для существующих названий обновляется единица измерения.
// Возвращает количество добавленных или изменённых строк.
func (s *Storage) UpsertIngredients(ctx context.Context, items []models.Ingredient) (int, error) {
	const op = "storage.UpsertIngredients"
	if len(items) == 0 {
		return 0, nil
	}
	names := make([]string, len(items))
	units := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
		units[i] = item.MeasurementUnit
	}

	var affected int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO ingredients (name, measurement_unit)
			SELECT * FROM unnest($1::text[], $2::text[])
			ON CONFLICT (name) DO UPDATE SET measurement_unit = EXCLUDED.measurement_unit
			WHERE ingredients.measurement_unit <> EXCLUDED.measurement_unit`, names, units)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, wrap(op, err)
	}
	return int(affected), nil
}
