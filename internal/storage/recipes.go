package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// recipeSelect выбирает рецепт, его автора и признаки относительно зрителя $1.
const recipeSelect = `
	SELECT r.id, r.name, r.text, r.image, r.cooking_time,
		u.id, u.email, u.username, u.first_name, u.last_name, u.avatar, u.role,
		EXISTS (SELECT 1 FROM subscriptions s WHERE s.user_id = $1 AND s.author_id = u.id),
		EXISTS (SELECT 1 FROM favorites f WHERE f.user_id = $1 AND f.recipe_id = r.id),
		EXISTS (SELECT 1 FROM shopping_cart c WHERE c.user_id = $1 AND c.recipe_id = r.id)
	FROM recipes r
	JOIN users u ON u.id = r.author_id`

func scanRecipe(row rowScanner) (models.RecipeRecord, error) {
	var r models.RecipeRecord
	a := &r.Author
	err := row.Scan(&r.ID, &r.Name, &r.Text, &r.Image, &r.CookingTime,
		&a.ID, &a.Email, &a.Username, &a.FirstName, &a.LastName, &a.Avatar, &a.Role,
		&a.IsSubscribed, &r.IsFavorited, &r.IsInShoppingCart)
	return r, err
}

// CreateRecipe сохраняет рецепт вместе с тегами и ингредиентами в одной транзакции.
func (s *Storage) CreateRecipe(ctx context.Context, authorID int64, w models.RecipeWrite) (int64, error) {
	const op = "storage.CreateRecipe"
	if w.Name == nil || w.Text == nil || w.Image == nil || w.CookingTime == nil {
		return 0, fmt.Errorf("%s: incomplete recipe", op)
	}

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO recipes (author_id, name, text, image, cooking_time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			authorID, *w.Name, *w.Text, *w.Image, *w.CookingTime).Scan(&id)
		if err != nil {
			return err
		}
		if err := insertTags(ctx, tx, id, w.Tags); err != nil {
			return err
		}
		return insertIngredients(ctx, tx, id, w.Ingredients)
	})
	if err != nil {
		return 0, wrap(op, err)
	}
	return id, nil
}

// UpdateRecipe изменяет переданные поля рецепта. Теги и ингредиенты
// заменяются целиком, если установлены SetTags и SetIngreds.
func (s *Storage) UpdateRecipe(ctx context.Context, id int64, w models.RecipeWrite) error {
	const op = "storage.UpdateRecipe"
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE recipes SET
				name = COALESCE($2, name),
				text = COALESCE($3, text),
				image = COALESCE($4, image),
				cooking_time = COALESCE($5, cooking_time)
			WHERE id = $1`,
			id, w.Name, w.Text, w.Image, w.CookingTime)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return sql.ErrNoRows
		}

		if w.SetTags {
			if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
				return err
			}
			if err := insertTags(ctx, tx, id, w.Tags); err != nil {
				return err
			}
		}
		if w.SetIngreds {
			if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
				return err
			}
			if err := insertIngredients(ctx, tx, id, w.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

func insertTags(ctx context.Context, tx *sql.Tx, recipeID int64, tags []int64) error {
	if len(tags) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		SELECT $1, tag_id FROM unnest($2::bigint[]) AS tag_id`, recipeID, tags)
	return err
}

func insertIngredients(ctx context.Context, tx *sql.Tx, recipeID int64, items []models.IngredientAmount) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	amounts := make([]int32, len(items))
	for i, item := range items {
		ids[i] = item.ID
		amounts[i] = int32(item.Amount)
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
		SELECT $1, x.ingredient_id, x.amount
		FROM unnest($2::bigint[], $3::int[]) WITH ORDINALITY AS x(ingredient_id, amount, ord)
		ORDER BY x.ord`, recipeID, ids, amounts)
	return err
}

// DeleteRecipe удаляет рецепт. Связанные строки удаляются каскадно.
func (s *Storage) DeleteRecipe(ctx context.Context, id int64) error {
	const op = "storage.DeleteRecipe"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// RecipeOwner возвращает автора рецепта и ключ его изображения.
func (s *Storage) RecipeOwner(ctx context.Context, id int64) (int64, string, error) {
	const op = "storage.RecipeOwner"
	var authorID int64
	var image string
	err := s.DB.QueryRowContext(ctx, `SELECT author_id, image FROM recipes WHERE id = $1`, id).
		Scan(&authorID, &image)
	if err != nil {
		return 0, "", wrap(op, err)
	}
	return authorID, image, nil
}

// RecipeBrief возвращает краткое представление рецепта. Image содержит ключ изображения.
func (s *Storage) RecipeBrief(ctx context.Context, id int64) (models.RecipeShort, error) {
	const op = "storage.RecipeBrief"
	var r models.RecipeShort
	err := s.DB.QueryRowContext(ctx, `SELECT id, name, image, cooking_time FROM recipes WHERE id = $1`, id).
		Scan(&r.ID, &r.Name, &r.Image, &r.CookingTime)
	if err != nil {
		return models.RecipeShort{}, wrap(op, err)
	}
	return r, nil
}

// GetRecipe возвращает рецепт с тегами, ингредиентами и признаками относительно зрителя.
func (s *Storage) GetRecipe(ctx context.Context, id, viewerID int64) (models.RecipeRecord, error) {
	const op = "storage.GetRecipe"
	r, err := scanRecipe(s.DB.QueryRowContext(ctx, recipeSelect+` WHERE r.id = $2`, viewerID, id))
	if err != nil {
		return models.RecipeRecord{}, wrap(op, err)
	}
	recipes := []models.RecipeRecord{r}
	if err := s.loadRelations(ctx, recipes); err != nil {
		return models.RecipeRecord{}, wrap(op, err)
	}
	return recipes[0], nil
}

// recipeFilterSQL строит условие WHERE для фильтра. Нумерация параметров начинается с first.
func recipeFilterSQL(f models.RecipeFilter, viewerID int64, first int) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", first+len(args)-1)
	}

	if f.AuthorID > 0 {
		conds = append(conds, "r.author_id = "+next(f.AuthorID))
	}
	if len(f.Tags) > 0 {
		conds = append(conds, `EXISTS (SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY(`+next(f.Tags)+`::text[]))`)
	}
	if f.IsFavorited && viewerID > 0 {
		conds = append(conds, "EXISTS (SELECT 1 FROM favorites fv WHERE fv.recipe_id = r.id AND fv.user_id = "+next(viewerID)+")")
	}
	if f.IsInShoppingCart && viewerID > 0 {
		conds = append(conds, "EXISTS (SELECT 1 FROM shopping_cart sc WHERE sc.recipe_id = r.id AND sc.user_id = "+next(viewerID)+")")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListRecipes возвращает страницу рецептов (новые первыми) и общее количество подходящих под фильтр.
func (s *Storage) ListRecipes(ctx context.Context, f models.RecipeFilter, viewerID int64, limit, offset int) ([]models.RecipeRecord, int, error) {
	const op = "storage.ListRecipes"

	var total int
	where, args := recipeFilterSQL(f, viewerID, 1)
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes r`+where, args...).Scan(&total); err != nil {
		return nil, 0, wrap(op, err)
	}

	where, args = recipeFilterSQL(f, viewerID, 2)
	args = append([]any{viewerID}, args...)
	n := len(args)
	query := recipeSelect + where + fmt.Sprintf(" ORDER BY r.id DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	rows, err := s.DB.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, wrap(op, err)
	}
	defer rows.Close()

	recipes := make([]models.RecipeRecord, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, wrap(op, err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrap(op, err)
	}
	if err := s.loadRelations(ctx, recipes); err != nil {
		return nil, 0, wrap(op, err)
	}
	return recipes, total, nil
}

// loadRelations заполняет теги и ингредиенты рецептов двумя запросами.
func (s *Storage) loadRelations(ctx context.Context, recipes []models.RecipeRecord) error {
	if len(recipes) == 0 {
		return nil
	}
	ids := make([]int64, len(recipes))
	index := make(map[int64]int, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
		index[recipes[i].ID] = i
		recipes[i].Tags = make([]models.Tag, 0)
		recipes[i].Ingredients = make([]models.RecipeIngredient, 0)
	}

	tagRows, err := s.DB.QueryContext(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.slug
		FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1::bigint[])
		ORDER BY t.id`, ids)
	if err != nil {
		return err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var recipeID int64
		var t models.Tag
		if err := tagRows.Scan(&recipeID, &t.ID, &t.Name, &t.Slug); err != nil {
			return err
		}
		i := index[recipeID]
		recipes[i].Tags = append(recipes[i].Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	ingRows, err := s.DB.QueryContext(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1::bigint[])
		ORDER BY ri.id`, ids)
	if err != nil {
		return err
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var recipeID int64
		var ri models.RecipeIngredient
		if err := ingRows.Scan(&recipeID, &ri.ID, &ri.Name, &ri.MeasurementUnit, &ri.Amount); err != nil {
			return err
		}
		i := index[recipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, ri)
	}
	return ingRows.Err()
}

// AuthorRecipes возвращает краткие рецепты авторов authorIDs, новые первыми.
// limit ограничивает число рецептов на автора, отрицательное значение снимает ограничение.
func (s *Storage) AuthorRecipes(ctx context.Context, authorIDs []int64, limit int) (map[int64][]models.RecipeShort, error) {
	const op = "storage.AuthorRecipes"
	result := make(map[int64][]models.RecipeShort, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT author_id, id, name, image, cooking_time FROM (
			SELECT author_id, id, name, image, cooking_time,
				row_number() OVER (PARTITION BY author_id ORDER BY id DESC) AS rn
			FROM recipes
			WHERE author_id = ANY($1::bigint[])
		) ranked
		WHERE $2 < 0 OR rn <= $2
		ORDER BY author_id, id DESC`, authorIDs, limit)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var authorID int64
		var r models.RecipeShort
		if err := rows.Scan(&authorID, &r.ID, &r.Name, &r.Image, &r.CookingTime); err != nil {
			return nil, wrap(op, err)
		}
		result[authorID] = append(result[authorID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return result, nil
}

// CartLines возвращает ингредиенты всех рецептов из списка покупок пользователя
// в порядке рецептов и строк рецепта.
func (s *Storage) CartLines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	const op = "storage.CartLines"
	rows, err := s.DB.QueryContext(ctx, `
		SELECT i.name, i.measurement_unit, ri.amount
		FROM shopping_cart c
		JOIN recipe_ingredients ri ON ri.recipe_id = c.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE c.user_id = $1
		ORDER BY c.recipe_id, ri.id`, userID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.Name, &l.Unit, &l.Amount); err != nil {
			return nil, wrap(op, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return lines, nil
}
