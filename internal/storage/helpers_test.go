package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/foodgram/internal/migrations"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

// setupTestDB поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDB(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping storage integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("foodgram"),
		postgres.WithUsername("foodgram"),
		postgres.WithPassword("foodgram"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://foodgram:foodgram@%s:%s/foodgram?sslmode=disable", host, port.Port())

	var storage *Storage
	for range 10 {
		storage, err = New(dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")
	t.Cleanup(func() { _ = storage.Close() })

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	return storage
}

// testFactory создаёт тестовые данные.
type testFactory struct {
	t *testing.T
	s *Storage
	n int
}

func newTestFactory(t *testing.T, s *Storage) *testFactory {
	return &testFactory{t: t, s: s}
}

func (f *testFactory) user() int64 {
	f.t.Helper()
	f.n++
	id, err := f.s.CreateUser(context.Background(), models.User{
		Email:        fmt.Sprintf("user%d@example.com", f.n),
		Username:     fmt.Sprintf("user%d", f.n),
		FirstName:    "Имя",
		LastName:     "Фамилия",
		PasswordHash: "hash",
	})
	require.NoError(f.t, err)
	return id
}

func (f *testFactory) ingredient(name, unit string) int64 {
	f.t.Helper()
	_, err := f.s.UpsertIngredients(context.Background(), []models.Ingredient{{Name: name, MeasurementUnit: unit}})
	require.NoError(f.t, err)
	var id int64
	require.NoError(f.t, f.s.DB.QueryRow(`SELECT id FROM ingredients WHERE name = $1`, name).Scan(&id))
	return id
}

func (f *testFactory) tagID(slug string) int64 {
	f.t.Helper()
	var id int64
	require.NoError(f.t, f.s.DB.QueryRow(`SELECT id FROM tags WHERE slug = $1`, slug).Scan(&id))
	return id
}

func (f *testFactory) recipe(authorID int64, name string, tags []int64, items []models.IngredientAmount) int64 {
	f.t.Helper()
	text, image, cooking := "Описание", "recipes/"+name+".png", 15
	id, err := f.s.CreateRecipe(context.Background(), authorID, models.RecipeWrite{
		Name:        &name,
		Text:        &text,
		Image:       &image,
		CookingTime: &cooking,
		Tags:        tags,
		Ingredients: items,
		SetTags:     true,
		SetIngreds:  true,
	})
	require.NoError(f.t, err)
	return id
}
