package recipe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foodgram/internal/lib/base64image"
	"github.com/magabrotheeeer/foodgram/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

const pixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateRecipe(ctx context.Context, authorID int64, w models.RecipeWrite) (int64, error) {
	args := m.Called(ctx, authorID, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) UpdateRecipe(ctx context.Context, id int64, w models.RecipeWrite) error {
	return m.Called(ctx, id, w).Error(0)
}

func (m *RepoMock) DeleteRecipe(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) RecipeOwner(ctx context.Context, id int64) (int64, string, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

func (m *RepoMock) RecipeBrief(ctx context.Context, id int64) (models.RecipeShort, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.RecipeShort), args.Error(1)
}

func (m *RepoMock) GetRecipe(ctx context.Context, id, viewerID int64) (models.RecipeRecord, error) {
	args := m.Called(ctx, id, viewerID)
	return args.Get(0).(models.RecipeRecord), args.Error(1)
}

func (m *RepoMock) ListRecipes(ctx context.Context, f models.RecipeFilter, viewerID int64, limit, offset int) ([]models.RecipeRecord, int, error) {
	args := m.Called(ctx, f, viewerID, limit, offset)
	recs, _ := args.Get(0).([]models.RecipeRecord)
	return recs, args.Int(1), args.Error(2)
}

func (m *RepoMock) MissingTags(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	missing, _ := args.Get(0).([]int64)
	return missing, args.Error(1)
}

func (m *RepoMock) MissingIngredients(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	missing, _ := args.Get(0).([]int64)
	return missing, args.Error(1)
}

func (m *RepoMock) AddRelation(ctx context.Context, rel models.Relation, userID, targetID int64) error {
	return m.Called(ctx, rel, userID, targetID).Error(0)
}

func (m *RepoMock) RemoveRelation(ctx context.Context, rel models.Relation, userID, targetID int64) error {
	return m.Called(ctx, rel, userID, targetID).Error(0)
}

func (m *RepoMock) CartLines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]models.CartLine)
	return lines, args.Error(1)
}

type StoreMock struct{ mock.Mock }

func (m *StoreMock) Save(ctx context.Context, dir string, img *base64image.Image) (string, error) {
	args := m.Called(ctx, dir, img)
	return args.String(0), args.Error(1)
}

func (m *StoreMock) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *StoreMock) URL(key string) string {
	return "http://media.test/" + key
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type fixture struct {
	repo   *RepoMock
	store  *StoreMock
	events *PublisherMock
	svc    *Service
}

func newFixture() fixture {
	f := fixture{repo: &RepoMock{}, store: &StoreMock{}, events: &PublisherMock{}}
	f.svc = NewService(f.repo, f.store, f.events, validation.New(), newNoopLogger())
	return f
}

func (f fixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.store.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func validInput() models.RecipeInput {
	name := "Борщ"
	text := "Сварить"
	image := pixelPNG
	cooking := 90
	ingredients := []models.IngredientAmount{{ID: 1, Amount: 300}, {ID: 2, Amount: 2}}
	tags := []int64{1, 2}
	return models.RecipeInput{
		Ingredients: &ingredients,
		Tags:        &tags,
		Image:       &image,
		Name:        &name,
		Text:        &text,
		CookingTime: &cooking,
	}
}

var (
	author = models.Viewer{ID: 10, Role: models.RoleUser}
	other  = models.Viewer{ID: 11, Role: models.RoleUser}
	admin  = models.Viewer{ID: 12, Role: models.RoleAdmin}
)

func TestService_Create(t *testing.T) {
	record := models.RecipeRecord{
		ID:    5,
		Name:  "Борщ",
		Image: "recipes/a.png",
		Author: models.UserRecord{
			User: models.User{ID: author.ID, Username: "chef"},
		},
	}

	tests := []struct {
		name       string
		viewer     models.Viewer
		input      func() models.RecipeInput
		setupMocks func(f fixture)
		wantErr    error
		wantFields []string
		wantImage  string
	}{
		{
			name:    "anonymous",
			viewer:  models.Viewer{},
			input:   validInput,
			wantErr: models.ErrUnauthorized,
		},
		{
			name:   "success",
			viewer: author,
			input:  validInput,
			setupMocks: func(f fixture) {
				f.repo.On("MissingTags", mock.Anything, []int64{1, 2}).Return(nil, nil).Once()
				f.repo.On("MissingIngredients", mock.Anything, []int64{1, 2}).Return(nil, nil).Once()
				f.store.On("Save", mock.Anything, "recipes", mock.AnythingOfType("*base64image.Image")).
					Return("recipes/a.png", nil).Once()
				f.repo.On("CreateRecipe", mock.Anything, author.ID, mock.MatchedBy(func(w models.RecipeWrite) bool {
					return w.Image != nil && *w.Image == "recipes/a.png" && *w.Name == "Борщ" && w.SetTags
				})).Return(int64(5), nil).Once()
				f.events.On("Publish", mock.Anything, rabbitmq.KeyRecipeCreated, rabbitmq.RecipeCreated{
					RecipeID: 5, AuthorID: author.ID, Name: "Борщ",
				}).Return(nil).Once()
				f.repo.On("GetRecipe", mock.Anything, int64(5), author.ID).Return(record, nil).Once()
			},
			wantImage: "http://media.test/recipes/a.png",
		},
		{
			name:   "publish failure is not fatal",
			viewer: author,
			input:  validInput,
			setupMocks: func(f fixture) {
				f.repo.On("MissingTags", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.repo.On("MissingIngredients", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.store.On("Save", mock.Anything, "recipes", mock.Anything).Return("recipes/a.png", nil).Once()
				f.repo.On("CreateRecipe", mock.Anything, author.ID, mock.Anything).Return(int64(5), nil).Once()
				f.events.On("Publish", mock.Anything, rabbitmq.KeyRecipeCreated, mock.Anything).
					Return(errors.New("channel closed")).Once()
				f.repo.On("GetRecipe", mock.Anything, int64(5), author.ID).Return(record, nil).Once()
			},
			wantImage: "http://media.test/recipes/a.png",
		},
		{
			name:   "missing references",
			viewer: author,
			input:  validInput,
			setupMocks: func(f fixture) {
				f.repo.On("MissingTags", mock.Anything, mock.Anything).Return([]int64{2}, nil).Once()
				f.repo.On("MissingIngredients", mock.Anything, mock.Anything).Return([]int64{1}, nil).Once()
			},
			wantFields: []string{"tags", "ingredients"},
		},
		{
			name:   "broken image",
			viewer: author,
			input: func() models.RecipeInput {
				in := validInput()
				broken := "data:image/png;base64,aGVsbG8="
				in.Image = &broken
				return in
			},
			setupMocks: func(f fixture) {
				f.repo.On("MissingTags", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.repo.On("MissingIngredients", mock.Anything, mock.Anything).Return(nil, nil).Once()
			},
			wantFields: []string{"image"},
		},
		{
			name:   "invalid body skips reference lookup",
			viewer: author,
			input: func() models.RecipeInput {
				in := validInput()
				empty := []int64{}
				in.Tags = &empty
				zero := 0
				in.CookingTime = &zero
				dup := []models.IngredientAmount{{ID: 1, Amount: 1}, {ID: 1, Amount: 2}}
				in.Ingredients = &dup
				return in
			},
			wantFields: []string{"tags", "cooking_time", "ingredients"},
		},
		{
			name:   "storage failure removes saved image",
			viewer: author,
			input:  validInput,
			setupMocks: func(f fixture) {
				f.repo.On("MissingTags", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.repo.On("MissingIngredients", mock.Anything, mock.Anything).Return(nil, nil).Once()
				f.store.On("Save", mock.Anything, "recipes", mock.Anything).Return("recipes/a.png", nil).Once()
				f.repo.On("CreateRecipe", mock.Anything, author.ID, mock.Anything).
					Return(int64(0), models.ErrNotFound).Once()
				f.store.On("Delete", mock.Anything, "recipes/a.png").Return(nil).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setupMocks != nil {
				tt.setupMocks(f)
			}

			got, err := f.svc.Create(context.Background(), tt.viewer, tt.input())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantFields != nil:
				errs, ok := validation.AsErrors(err)
				require.True(t, ok, "expected validation errors, got %v", err)
				for _, field := range tt.wantFields {
					assert.True(t, errs.Has(field), "field %s", field)
				}
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(5), got.ID)
				assert.Equal(t, tt.wantImage, got.Image)
				assert.Equal(t, author.ID, got.Author.ID)
			}
			f.assertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	record := models.RecipeRecord{ID: 5, Name: "Щи", Image: "recipes/new.png"}
	rename := func() models.RecipeInput {
		name := "Щи"
		return models.RecipeInput{Name: &name}
	}

	tests := []struct {
		name       string
		viewer     models.Viewer
		input      func() models.RecipeInput
		setupMocks func(f fixture)
		wantErr    error
		wantFields []string
	}{
		{
			name:   "author renames recipe",
			viewer: author,
			input:  rename,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeOwner", mock.Anything, int64(5)).Return(author.ID, "recipes/old.png", nil).Once()
				f.repo.On("UpdateRecipe", mock.Anything, int64(5), mock.MatchedBy(func(w models.RecipeWrite) bool {
					return *w.Name == "Щи" && w.Image == nil && !w.SetTags && !w.SetIngreds
				})).Return(nil).Once()
				f.repo.On("GetRecipe", mock.Anything, int64(5), author.ID).Return(record, nil).Once()
			},
		},
		{
			name:   "admin replaces image and old one is removed",
			viewer: admin,
			input: func() models.RecipeInput {
				image := pixelPNG
				return models.RecipeInput{Image: &image}
			},
			setupMocks: func(f fixture) {
				f.repo.On("RecipeOwner", mock.Anything, int64(5)).Return(author.ID, "recipes/old.png", nil).Once()
				f.store.On("Save", mock.Anything, "recipes", mock.Anything).Return("recipes/new.png", nil).Once()
				f.repo.On("UpdateRecipe", mock.Anything, int64(5), mock.Anything).Return(nil).Once()
				f.store.On("Delete", mock.Anything, "recipes/old.png").Return(nil).Once()
				f.repo.On("GetRecipe", mock.Anything, int64(5), admin.ID).Return(record, nil).Once()
			},
		},
		{
			name:   "not the author",
			viewer: other,
			input:  rename,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeOwner", mock.Anything, int64(5)).Return(author.ID, "", nil).Once()
			},
			wantErr: models.ErrForbidden,
		},
		{
			name:   "missing recipe is reported before permissions",
			viewer: other,
			input:  rename,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeOwner", mock.Anything, int64(5)).Return(int64(0), "", models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
		{
			name:    "anonymous",
			viewer:  models.Viewer{},
			input:   rename,
			wantErr: models.ErrUnauthorized,
		},
		{
			name:   "empty tags list",
			viewer: author,
			input: func() models.RecipeInput {
				empty := []int64{}
				return models.RecipeInput{Tags: &empty}
			},
			setupMocks: func(f fixture) {
				f.repo.On("RecipeOwner", mock.Anything, int64(5)).Return(author.ID, "", nil).Once()
			},
			wantFields: []string{"tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setupMocks != nil {
				tt.setupMocks(f)
			}

			got, err := f.svc.Update(context.Background(), tt.viewer, 5, tt.input())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantFields != nil:
				errs, ok := validation.AsErrors(err)
				require.True(t, ok)
				for _, field := range tt.wantFields {
					assert.True(t, errs.Has(field))
				}
			default:
				require.NoError(t, err)
				assert.Equal(t, "Щи", got.Name)
			}
			f.assertExpectations(t)
		})
	}
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name       string
		viewer     models.Viewer
		setupMocks func(f fixture)
		wantErr    error
	}{
		{
			name:   "author deletes recipe and image",
			viewer: author,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeOwner", mock.Anything, int64(5)).Return(author.ID, "recipes/a.png", nil).Once()
				f.repo.On("DeleteRecipe", mock.Anything, int64(5)).Return(nil).Once()
				f.store.On("Delete", mock.Anything, "recipes/a.png").Return(nil).Once()
			},
		},
		{
			name:   "image removal failure is not fatal",
			viewer: admin,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeOwner", mock.Anything, int64(5)).Return(author.ID, "recipes/a.png", nil).Once()
				f.repo.On("DeleteRecipe", mock.Anything, int64(5)).Return(nil).Once()
				f.store.On("Delete", mock.Anything, "recipes/a.png").Return(errors.New("io")).Once()
			},
		},
		{
			name:   "not the author",
			viewer: other,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeOwner", mock.Anything, int64(5)).Return(author.ID, "recipes/a.png", nil).Once()
			},
			wantErr: models.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setupMocks(f)

			err := f.svc.Delete(context.Background(), tt.viewer, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			f.assertExpectations(t)
		})
	}
}

func TestService_List_AnonymousIgnoresPersonalFilters(t *testing.T) {
	f := newFixture()
	filter := models.RecipeFilter{Tags: []string{"lunch"}, IsFavorited: true, IsInShoppingCart: true}
	expected := models.RecipeFilter{Tags: []string{"lunch"}}
	f.repo.On("ListRecipes", mock.Anything, expected, int64(0), 6, 0).
		Return([]models.RecipeRecord{{ID: 1, Image: "recipes/x.png"}}, 1, nil).Once()

	got, total, err := f.svc.List(context.Background(), models.Viewer{}, filter, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "http://media.test/recipes/x.png", got[0].Image)
	assert.NotNil(t, got[0].Tags)
	f.assertExpectations(t)
}

func TestService_Add(t *testing.T) {
	brief := models.RecipeShort{ID: 5, Name: "Борщ", Image: "recipes/a.png", CookingTime: 90}

	tests := []struct {
		name       string
		viewer     models.Viewer
		setupMocks func(f fixture)
		wantErr    error
	}{
		{
			name:   "added to favorites",
			viewer: author,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeBrief", mock.Anything, int64(5)).Return(brief, nil).Once()
				f.repo.On("AddRelation", mock.Anything, models.RelationFavorite, author.ID, int64(5)).Return(nil).Once()
			},
		},
		{
			name:   "already present",
			viewer: author,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeBrief", mock.Anything, int64(5)).Return(brief, nil).Once()
				f.repo.On("AddRelation", mock.Anything, models.RelationFavorite, author.ID, int64(5)).
					Return(models.ErrAlreadyExists).Once()
			},
			wantErr: models.ErrAlreadyExists,
		},
		{
			name:   "missing recipe",
			viewer: author,
			setupMocks: func(f fixture) {
				f.repo.On("RecipeBrief", mock.Anything, int64(5)).Return(models.RecipeShort{}, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
		{
			name:       "anonymous",
			viewer:     models.Viewer{},
			setupMocks: func(_ fixture) {},
			wantErr:    models.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setupMocks(f)

			got, err := f.svc.Add(context.Background(), tt.viewer, models.RelationFavorite, 5)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "http://media.test/recipes/a.png", got.Image)
				assert.Equal(t, 90, got.CookingTime)
			}
			f.assertExpectations(t)
		})
	}
}

func TestService_Remove(t *testing.T) {
	f := newFixture()
	f.repo.On("RecipeBrief", mock.Anything, int64(5)).Return(models.RecipeShort{ID: 5}, nil).Twice()
	f.repo.On("RemoveRelation", mock.Anything, models.RelationCart, author.ID, int64(5)).Return(nil).Once()
	f.repo.On("RemoveRelation", mock.Anything, models.RelationCart, author.ID, int64(5)).Return(models.ErrNotPresent).Once()

	require.NoError(t, f.svc.Remove(context.Background(), author, models.RelationCart, 5))
	assert.ErrorIs(t, f.svc.Remove(context.Background(), author, models.RelationCart, 5), models.ErrNotPresent)
	f.assertExpectations(t)
}

func TestService_ShoppingList(t *testing.T) {
	f := newFixture()
	f.repo.On("CartLines", mock.Anything, author.ID).Return([]models.CartLine{
		{Name: "Соль", Unit: "г", Amount: 5},
		{Name: "Соль", Unit: "г", Amount: 10},
	}, nil).Once()

	got, err := f.svc.ShoppingList(context.Background(), author)
	require.NoError(t, err)
	assert.Equal(t, "Соль (г) — 15 г", got)

	_, err = f.svc.ShoppingList(context.Background(), models.Viewer{})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	f.assertExpectations(t)
}
