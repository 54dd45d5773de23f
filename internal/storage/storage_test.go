package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

func TestStorage_Users(t *testing.T) {
	s := setupTestDB(t)
	f := newTestFactory(t, s)
	ctx := context.Background()

	alice := f.user()
	bob := f.user()

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.CreateUser(ctx, models.User{
			Email: "user1@example.com", Username: "other", FirstName: "a", LastName: "b", PasswordHash: "x",
		})
		require.ErrorIs(t, err, models.ErrAlreadyExists)
		var uerr *models.UniqueError
		require.ErrorAs(t, err, &uerr)
		assert.Equal(t, "users_email_key", uerr.Constraint)
	})

	t.Run("by email case insensitive", func(t *testing.T) {
		u, err := s.UserByEmail(ctx, "USER2@example.com")
		require.NoError(t, err)
		assert.Equal(t, bob, u.ID)
	})

	t.Run("role follows set role", func(t *testing.T) {
		role, err := s.UserRole(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, role)

		require.NoError(t, s.SetRole(ctx, "USER1@example.com", models.RoleAdmin))
		role, err = s.UserRole(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, role)

		_, err = s.UserRole(ctx, 999999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.UserByID(ctx, 999999, 0)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("subscription flag", func(t *testing.T) {
		require.NoError(t, s.AddRelation(ctx, models.RelationSubscription, alice, bob))

		u, err := s.UserByID(ctx, bob, alice)
		require.NoError(t, err)
		assert.True(t, u.IsSubscribed)

		u, err = s.UserByID(ctx, bob, 0)
		require.NoError(t, err)
		assert.False(t, u.IsSubscribed)
	})

	t.Run("avatar returns previous key", func(t *testing.T) {
		prev, err := s.SetAvatar(ctx, alice, "avatars/a.png")
		require.NoError(t, err)
		assert.Equal(t, "", prev)

		prev, err = s.SetAvatar(ctx, alice, "")
		require.NoError(t, err)
		assert.Equal(t, "avatars/a.png", prev)
	})

	t.Run("list", func(t *testing.T) {
		users, total, err := s.ListUsers(ctx, alice, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, users, 1)
		assert.Equal(t, bob, users[0].ID)
		assert.True(t, users[0].IsSubscribed)
	})

	t.Run("cyrillic username", func(t *testing.T) {
		id, err := s.CreateUser(ctx, models.User{
			Email: "ivan@example.com", Username: "Иван.Петров", FirstName: "Иван", LastName: "Петров", PasswordHash: "x",
		})
		require.NoError(t, err)
		u, err := s.UserByID(ctx, id, 0)
		require.NoError(t, err)
		assert.Equal(t, "Иван.Петров", u.Username)
	})
}

func TestStorage_Relations(t *testing.T) {
	s := setupTestDB(t)
	f := newTestFactory(t, s)
	ctx := context.Background()

	author := f.user()
	reader := f.user()
	flour := f.ingredient("Мука", "г")
	recipe := f.recipe(author, "Блины", []int64{f.tagID("breakfast")}, []models.IngredientAmount{{ID: flour, Amount: 200}})

	require.NoError(t, s.AddRelation(ctx, models.RelationFavorite, reader, recipe))
	assert.ErrorIs(t, s.AddRelation(ctx, models.RelationFavorite, reader, recipe), models.ErrAlreadyExists)

	var count int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM favorites WHERE user_id = $1`, reader).Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, s.RemoveRelation(ctx, models.RelationFavorite, reader, recipe))
	assert.ErrorIs(t, s.RemoveRelation(ctx, models.RelationFavorite, reader, recipe), models.ErrNotPresent)
	assert.ErrorIs(t, s.RemoveRelation(ctx, models.RelationCart, reader, recipe), models.ErrNotPresent)

	assert.ErrorIs(t, s.AddRelation(ctx, models.RelationSubscription, reader, reader), models.ErrSelfSubscription)
	assert.ErrorIs(t, s.AddRelation(ctx, models.RelationCart, reader, 424242), models.ErrNotFound)

	require.NoError(t, s.AddRelation(ctx, models.RelationSubscription, reader, author))
	subs, total, err := s.Subscriptions(ctx, reader, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, subs, 1)
	assert.Equal(t, author, subs[0].ID)
	assert.Equal(t, 1, subs[0].RecipesCount)
	assert.True(t, subs[0].IsSubscribed)
}

func TestStorage_RelationsConcurrent(t *testing.T) {
	s := setupTestDB(t)
	f := newTestFactory(t, s)
	ctx := context.Background()

	author := f.user()
	reader := f.user()
	flour := f.ingredient("Мука", "г")
	recipe := f.recipe(author, "Оладьи", []int64{f.tagID("breakfast")}, []models.IngredientAmount{{ID: flour, Amount: 250}})

	const workers = 8

	// race запускает fn одновременно в workers горутинах и возвращает их ошибки.
	race := func(fn func() error) []error {
		var (
			start sync.WaitGroup
			done  sync.WaitGroup
		)
		start.Add(1)
		errs := make([]error, workers)
		for i := range workers {
			done.Add(1)
			go func() {
				defer done.Done()
				start.Wait()
				errs[i] = fn()
			}()
		}
		start.Done()
		done.Wait()
		return errs
	}

	countOutcomes := func(t *testing.T, errs []error, expected error) {
		t.Helper()
		succeeded := 0
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, expected):
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, succeeded)
	}

	favorites := func(t *testing.T) int {
		t.Helper()
		var count int
		require.NoError(t, s.DB.QueryRow(
			`SELECT COUNT(*) FROM favorites WHERE user_id = $1 AND recipe_id = $2`, reader, recipe).Scan(&count))
		return count
	}

	t.Run("add", func(t *testing.T) {
		errs := race(func() error { return s.AddRelation(ctx, models.RelationFavorite, reader, recipe) })
		countOutcomes(t, errs, models.ErrAlreadyExists)
		assert.Equal(t, 1, favorites(t))
	})

	t.Run("remove", func(t *testing.T) {
		errs := race(func() error { return s.RemoveRelation(ctx, models.RelationFavorite, reader, recipe) })
		countOutcomes(t, errs, models.ErrNotPresent)
		assert.Equal(t, 0, favorites(t))
	})
}

func TestStorage_Recipes(t *testing.T) {
	s := setupTestDB(t)
	f := newTestFactory(t, s)
	ctx := context.Background()

	author := f.user()
	reader := f.user()
	flour := f.ingredient("Мука", "г")
	milk := f.ingredient("Молоко", "мл")
	breakfast, dinner := f.tagID("breakfast"), f.tagID("dinner")

	pancakes := f.recipe(author, "Блины", []int64{breakfast}, []models.IngredientAmount{
		{ID: milk, Amount: 500}, {ID: flour, Amount: 200},
	})
	pie := f.recipe(author, "Пирог", []int64{dinner}, []models.IngredientAmount{{ID: flour, Amount: 300}})

	t.Run("get with relations", func(t *testing.T) {
		r, err := s.GetRecipe(ctx, pancakes, reader)
		require.NoError(t, err)
		assert.Equal(t, "Блины", r.Name)
		assert.Equal(t, author, r.Author.ID)
		require.Len(t, r.Tags, 1)
		assert.Equal(t, "breakfast", r.Tags[0].Slug)
		require.Len(t, r.Ingredients, 2)
		assert.Equal(t, "Молоко", r.Ingredients[0].Name)
		assert.Equal(t, 500, r.Ingredients[0].Amount)
		assert.False(t, r.IsFavorited)
	})

	t.Run("list filters", func(t *testing.T) {
		require.NoError(t, s.AddRelation(ctx, models.RelationFavorite, reader, pie))

		all, total, err := s.ListRecipes(ctx, models.RecipeFilter{}, reader, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, all, 2)
		assert.Equal(t, pie, all[0].ID, "newest first")
		assert.True(t, all[0].IsFavorited)

		byTag, total, err := s.ListRecipes(ctx, models.RecipeFilter{Tags: []string{"breakfast", "lunch"}}, 0, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, pancakes, byTag[0].ID)

		favs, total, err := s.ListRecipes(ctx, models.RecipeFilter{IsFavorited: true}, reader, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, pie, favs[0].ID)

		anon, total, err := s.ListRecipes(ctx, models.RecipeFilter{IsFavorited: true}, 0, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.False(t, anon[0].IsFavorited)

		byAuthor, total, err := s.ListRecipes(ctx, models.RecipeFilter{AuthorID: reader}, 0, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, byAuthor)
	})

	t.Run("partial update keeps tags", func(t *testing.T) {
		name := "Тонкие блины"
		require.NoError(t, s.UpdateRecipe(ctx, pancakes, models.RecipeWrite{
			Name:        &name,
			Ingredients: []models.IngredientAmount{{ID: flour, Amount: 150}},
			SetIngreds:  true,
		}))
		r, err := s.GetRecipe(ctx, pancakes, 0)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name)
		assert.Len(t, r.Tags, 1)
		require.Len(t, r.Ingredients, 1)
		assert.Equal(t, 150, r.Ingredients[0].Amount)
	})

	t.Run("author recipes limit", func(t *testing.T) {
		got, err := s.AuthorRecipes(ctx, []int64{author}, 1)
		require.NoError(t, err)
		require.Len(t, got[author], 1)
		assert.Equal(t, pie, got[author][0].ID)

		got, err = s.AuthorRecipes(ctx, []int64{author}, -1)
		require.NoError(t, err)
		assert.Len(t, got[author], 2)
	})

	t.Run("cart lines", func(t *testing.T) {
		require.NoError(t, s.AddRelation(ctx, models.RelationCart, reader, pancakes))
		require.NoError(t, s.AddRelation(ctx, models.RelationCart, reader, pie))
		lines, err := s.CartLines(ctx, reader)
		require.NoError(t, err)
		assert.Equal(t, []models.CartLine{
			{Name: "Мука", Unit: "г", Amount: 150},
			{Name: "Мука", Unit: "г", Amount: 300},
		}, lines)
	})

	t.Run("missing references", func(t *testing.T) {
		missing, err := s.MissingIngredients(ctx, []int64{flour, 777, milk, 778})
		require.NoError(t, err)
		assert.Equal(t, []int64{777, 778}, missing)

		missing, err = s.MissingTags(ctx, []int64{breakfast})
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("delete cascades", func(t *testing.T) {
		require.NoError(t, s.DeleteRecipe(ctx, pie))
		assert.ErrorIs(t, s.DeleteRecipe(ctx, pie), models.ErrNotFound)
		_, err := s.GetRecipe(ctx, pie, 0)
		assert.ErrorIs(t, err, models.ErrNotFound)

		var count int
		require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM favorites WHERE recipe_id = $1`, pie).Scan(&count))
		assert.Zero(t, count)
	})
}

func TestStorage_Catalog(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	n, err := s.UpsertIngredients(ctx, []models.Ingredient{
		{Name: "Сахар", MeasurementUnit: "г"},
		{Name: "Сахарная пудра", MeasurementUnit: "г"},
		{Name: "Соль", MeasurementUnit: "г"},
		{Name: "100%_сок", MeasurementUnit: "мл"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.UpsertIngredients(ctx, []models.Ingredient{{Name: "Соль", MeasurementUnit: "щепотка"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	items, err := s.ListIngredients(ctx, "сах")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Сахар", items[0].Name)

	items, err = s.ListIngredients(ctx, "100%_")
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = s.ListIngredients(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, items)

	salt, err := s.IngredientByID(ctx, ingredientID(t, s, "Соль"))
	require.NoError(t, err)
	assert.Equal(t, "щепотка", salt.MeasurementUnit)

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 3)

	_, err = s.TagByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func ingredientID(t *testing.T, s *Storage, name string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, s.DB.QueryRow(`SELECT id FROM ingredients WHERE name = $1`, name).Scan(&id))
	return id
}
