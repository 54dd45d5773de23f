// Package catalog содержит бизнес-логику справочников тегов и ингредиентов
// с кешированием в Redis.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

const (
	keyTags              = "tags:all"
	keyIngredientsPrefix = "ingredients:"

	maxIngredientName = 128
	maxUnit           = 64
)

// Repository определяет методы хранилища для работы со справочниками.
type Repository interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	TagByID(ctx context.Context, id int64) (models.Tag, error)
	ListIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error)
	IngredientByID(ctx context.Context, id int64) (models.Ingredient, error)
	UpsertIngredients(ctx context.Context, items []models.Ingredient) (int, error)
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// InvalidatePrefix удаляет из кеша все ключи с префиксом.
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Service реализует чтение справочников и загрузку ингредиентов.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService создаёт Service. cache может быть nil, тогда справочники читаются напрямую из хранилища.
func NewService(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, log: log}
}

// Tags возвращает все теги.
func (s *Service) Tags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if s.fromCache(ctx, keyTags, &tags) {
		return tags, nil
	}
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, keyTags, tags)
	return tags, nil
}

// Tag возвращает тег по идентификатору.
func (s *Service) Tag(ctx context.Context, id int64) (models.Tag, error) {
	return s.repo.TagByID(ctx, id)
}

// Ingredients возвращает ингредиенты, название которых начинается с name.
func (s *Service) Ingredients(ctx context.Context, name string) ([]models.Ingredient, error) {
	key := keyIngredientsPrefix + strings.ToLower(strings.TrimSpace(name))
	var items []models.Ingredient
	if s.fromCache(ctx, key, &items) {
		return items, nil
	}
	items, err := s.repo.ListIngredients(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, items)
	return items, nil
}

// Ingredient возвращает ингредиент по идентификатору.
func (s *Service) Ingredient(ctx context.Context, id int64) (models.Ingredient, error) {
	return s.repo.IngredientByID(ctx, id)
}

// LoadIngredients читает JSON-массив ингредиентов вида
// [{"name": "...", "measurement_unit": "..."}] и добавляет их в справочник.
// Повторяющиеся названия схлопываются, побеждает последнее вхождение.
func (s *Service) LoadIngredients(ctx context.Context, r io.Reader) (int, error) {
	const op = "catalog.LoadIngredients"

	var raw []models.Ingredient
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	index := make(map[string]int, len(raw))
	items := make([]models.Ingredient, 0, len(raw))
	for i, item := range raw {
		item.Name = strings.TrimSpace(item.Name)
		item.MeasurementUnit = strings.TrimSpace(item.MeasurementUnit)
		if item.Name == "" || item.MeasurementUnit == "" {
			return 0, fmt.Errorf("%s: item %d: name and measurement_unit are required", op, i)
		}
		if utf8.RuneCountInString(item.Name) > maxIngredientName || utf8.RuneCountInString(item.MeasurementUnit) > maxUnit {
			return 0, fmt.Errorf("%s: item %d: value too long", op, i)
		}
		if j, ok := index[item.Name]; ok {
			items[j] = item
			continue
		}
		index[item.Name] = len(items)
		items = append(items, item)
	}

	n, err := s.repo.UpsertIngredients(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if s.cache != nil {
		if err := s.cache.InvalidatePrefix(ctx, keyIngredientsPrefix); err != nil {
			s.log.Warn("failed to invalidate ingredients cache", sl.Err(err))
		}
	}
	s.log.Info("ingredients loaded", slog.Int("total", len(items)), slog.Int("changed", n))
	return n, nil
}

func (s *Service) fromCache(ctx context.Context, key string, result any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
		return false
	}
	return found
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("failed to write to cache", slog.String("key", key), sl.Err(err))
	}
}
