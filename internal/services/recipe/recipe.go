// Package recipe содержит бизнес-логику рецептов: создание и изменение с проверкой
// прав автора, списки с фильтрами, избранное, список покупок и его выгрузку.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/foodgram/internal/lib/base64image"
	"github.com/magabrotheeeer/foodgram/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/storage/images"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

// Repository определяет методы хранилища, необходимые сервису рецептов.
type Repository interface {
	CreateRecipe(ctx context.Context, authorID int64, w models.RecipeWrite) (int64, error)
	UpdateRecipe(ctx context.Context, id int64, w models.RecipeWrite) error
	DeleteRecipe(ctx context.Context, id int64) error
	RecipeOwner(ctx context.Context, id int64) (int64, string, error)
	RecipeBrief(ctx context.Context, id int64) (models.RecipeShort, error)
	GetRecipe(ctx context.Context, id, viewerID int64) (models.RecipeRecord, error)
	ListRecipes(ctx context.Context, f models.RecipeFilter, viewerID int64, limit, offset int) ([]models.RecipeRecord, int, error)
	MissingTags(ctx context.Context, ids []int64) ([]int64, error)
	MissingIngredients(ctx context.Context, ids []int64) ([]int64, error)
	AddRelation(ctx context.Context, rel models.Relation, userID, targetID int64) error
	RemoveRelation(ctx context.Context, rel models.Relation, userID, targetID int64) error
	CartLines(ctx context.Context, userID int64) ([]models.CartLine, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service реализует операции над рецептами.
type Service struct {
	repo     Repository
	images   images.Store
	events   Publisher
	validate *validation.Validator
	log      *slog.Logger
}

// NewService создаёт Service.
func NewService(repo Repository, store images.Store, events Publisher, validate *validation.Validator, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		images:   store,
		events:   events,
		validate: validate,
		log:      log,
	}
}

// List возвращает страницу рецептов и общее количество. Фильтры по избранному
// и списку покупок действуют только для аутентифицированного зрителя.
func (s *Service) List(ctx context.Context, viewer models.Viewer, f models.RecipeFilter, limit, offset int) ([]models.Recipe, int, error) {
	if !viewer.Authenticated() {
		f.IsFavorited = false
		f.IsInShoppingCart = false
	}
	records, total, err := s.repo.ListRecipes(ctx, f, viewer.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]models.Recipe, len(records))
	for i, r := range records {
		out[i] = r.Present(s.images.URL)
	}
	return out, total, nil
}

// Get возвращает рецепт с вычисляемыми полями относительно зрителя.
func (s *Service) Get(ctx context.Context, viewer models.Viewer, id int64) (models.Recipe, error) {
	r, err := s.repo.GetRecipe(ctx, id, viewer.ID)
	if err != nil {
		return models.Recipe{}, err
	}
	return r.Present(s.images.URL), nil
}

// Exists проверяет, что рецепт существует.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.repo.RecipeBrief(ctx, id)
	return err
}

// Create проверяет данные и создаёт рецепт от имени зрителя.
func (s *Service) Create(ctx context.Context, viewer models.Viewer, in models.RecipeInput) (models.Recipe, error) {
	const op = "recipe.Create"
	if !viewer.Authenticated() {
		return models.Recipe{}, models.ErrUnauthorized
	}

	w, err := s.prepare(ctx, in, false)
	if err != nil {
		return models.Recipe{}, err
	}

	id, err := s.repo.CreateRecipe(ctx, viewer.ID, w)
	if err != nil {
		s.dropImage(ctx, *w.Image)
		return models.Recipe{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("recipe created", slog.Int64("id", id), slog.Int64("author_id", viewer.ID))

	event := rabbitmq.RecipeCreated{RecipeID: id, AuthorID: viewer.ID, Name: *w.Name}
	if err := s.events.Publish(ctx, rabbitmq.KeyRecipeCreated, event); err != nil {
		s.log.Warn("failed to publish recipe event", slog.Int64("id", id), sl.Err(err))
	}

	return s.Get(ctx, viewer, id)
}

// Update частично изменяет рецепт. Изменять рецепт может только автор или администратор.
func (s *Service) Update(ctx context.Context, viewer models.Viewer, id int64, in models.RecipeInput) (models.Recipe, error) {
	const op = "recipe.Update"
	oldImage, err := s.authorize(ctx, viewer, id)
	if err != nil {
		return models.Recipe{}, err
	}

	w, err := s.prepare(ctx, in, true)
	if err != nil {
		return models.Recipe{}, err
	}

	if err := s.repo.UpdateRecipe(ctx, id, w); err != nil {
		if w.Image != nil {
			s.dropImage(ctx, *w.Image)
		}
		return models.Recipe{}, fmt.Errorf("%s: %w", op, err)
	}
	if w.Image != nil {
		s.dropImage(ctx, oldImage)
	}
	s.log.Info("recipe updated", slog.Int64("id", id), slog.Int64("by", viewer.ID))

	return s.Get(ctx, viewer, id)
}

// Delete удаляет рецепт. Удалять рецепт может только автор или администратор.
func (s *Service) Delete(ctx context.Context, viewer models.Viewer, id int64) error {
	const op = "recipe.Delete"
	image, err := s.authorize(ctx, viewer, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteRecipe(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.dropImage(ctx, image)
	s.log.Info("recipe deleted", slog.Int64("id", id), slog.Int64("by", viewer.ID))
	return nil
}

// Add добавляет рецепт в избранное или список покупок зрителя.
func (s *Service) Add(ctx context.Context, viewer models.Viewer, rel models.Relation, id int64) (models.RecipeShort, error) {
	if !viewer.Authenticated() {
		return models.RecipeShort{}, models.ErrUnauthorized
	}
	brief, err := s.repo.RecipeBrief(ctx, id)
	if err != nil {
		return models.RecipeShort{}, err
	}
	if err := s.repo.AddRelation(ctx, rel, viewer.ID, id); err != nil {
		return models.RecipeShort{}, err
	}
	return brief.WithImageURL(s.images.URL), nil
}

// Remove убирает рецепт из избранного или списка покупок зрителя.
func (s *Service) Remove(ctx context.Context, viewer models.Viewer, rel models.Relation, id int64) error {
	if !viewer.Authenticated() {
		return models.ErrUnauthorized
	}
	if _, err := s.repo.RecipeBrief(ctx, id); err != nil {
		return err
	}
	return s.repo.RemoveRelation(ctx, rel, viewer.ID, id)
}

// ShoppingList возвращает текст списка покупок зрителя.
func (s *Service) ShoppingList(ctx context.Context, viewer models.Viewer) (string, error) {
	if !viewer.Authenticated() {
		return "", models.ErrUnauthorized
	}
	lines, err := s.repo.CartLines(ctx, viewer.ID)
	if err != nil {
		return "", err
	}
	return Aggregate(lines), nil
}

// authorize проверяет, что рецепт существует и зритель может его изменять.
// Возвращает ключ текущего изображения рецепта.
func (s *Service) authorize(ctx context.Context, viewer models.Viewer, id int64) (string, error) {
	if !viewer.Authenticated() {
		return "", models.ErrUnauthorized
	}
	authorID, image, err := s.repo.RecipeOwner(ctx, id)
	if err != nil {
		return "", err
	}
	if authorID != viewer.ID && !viewer.IsAdmin() {
		return "", models.ErrForbidden
	}
	return image, nil
}

// prepare проверяет тело запроса, существование тегов и ингредиентов
// и сохраняет переданное изображение. В w.Image возвращается ключ изображения.
func (s *Service) prepare(ctx context.Context, in models.RecipeInput, partial bool) (models.RecipeWrite, error) {
	w, errs := s.validate.Recipe(in, partial)

	if len(w.Tags) > 0 && !errs.Has("tags") {
		missing, err := s.repo.MissingTags(ctx, w.Tags)
		if err != nil {
			return models.RecipeWrite{}, err
		}
		for _, id := range missing {
			errs.Add("tags", fmt.Sprintf(validation.MsgDoesNotExist, id))
		}
	}
	if len(w.Ingredients) > 0 && !errs.Has("ingredients") {
		ids := make([]int64, len(w.Ingredients))
		for i, item := range w.Ingredients {
			ids[i] = item.ID
		}
		missing, err := s.repo.MissingIngredients(ctx, ids)
		if err != nil {
			return models.RecipeWrite{}, err
		}
		for _, id := range missing {
			errs.Add("ingredients", fmt.Sprintf(validation.MsgDoesNotExist, id))
		}
	}

	var img *base64image.Image
	if w.Image != nil {
		decoded, err := base64image.Decode(*w.Image)
		if err != nil {
			errs.Add("image", validation.MsgInvalidImage)
		} else {
			img = decoded
		}
	}

	if err := errs.OrNil(); err != nil {
		return models.RecipeWrite{}, err
	}

	if img != nil {
		key, err := s.images.Save(ctx, images.DirRecipes, img)
		if err != nil {
			return models.RecipeWrite{}, err
		}
		w.Image = &key
	}
	return w, nil
}

func (s *Service) dropImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("failed to delete image", slog.String("key", key), sl.Err(err))
	}
}
