// Package user содержит бизнес-логику пользователей: регистрацию, профиль,
// аватар, смену пароля и подписки на авторов.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/foodgram/internal/lib/base64image"
	"github.com/magabrotheeeer/foodgram/internal/lib/password"
	"github.com/magabrotheeeer/foodgram/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/storage/images"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

// Имена ограничений уникальности таблицы users.
const (
	constraintEmail    = "users_email_key"
	constraintUsername = "users_username_key"
)

// Repository определяет методы хранилища, необходимые сервису пользователей.
type Repository interface {
	CreateUser(ctx context.Context, u models.User) (int64, error)
	UserByID(ctx context.Context, id, viewerID int64) (models.UserRecord, error)
	ListUsers(ctx context.Context, viewerID int64, limit, offset int) ([]models.UserRecord, int, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetAvatar(ctx context.Context, id int64, key string) (string, error)
	AddRelation(ctx context.Context, rel models.Relation, userID, targetID int64) error
	RemoveRelation(ctx context.Context, rel models.Relation, userID, targetID int64) error
	Subscriptions(ctx context.Context, userID int64, limit, offset int) ([]models.UserRecord, int, error)
	AuthorRecipes(ctx context.Context, authorIDs []int64, limit int) (map[int64][]models.RecipeShort, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service реализует операции над пользователями.
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

// Register создаёт пользователя с ролью по умолчанию. Занятые email и username
// возвращаются как ошибки соответствующих полей.
func (s *Service) Register(ctx context.Context, in models.UserRegistration) (models.UserCreated, error) {
	const op = "user.Register"
	if err := s.validate.Registration(in).OrNil(); err != nil {
		return models.UserCreated{}, err
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return models.UserCreated{}, fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.repo.CreateUser(ctx, models.User{
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	})
	var uniq *models.UniqueError
	if errors.As(err, &uniq) {
		switch uniq.Constraint {
		case constraintEmail:
			return models.UserCreated{}, validation.Single("email", validation.MsgEmailTaken)
		case constraintUsername:
			return models.UserCreated{}, validation.Single("username", validation.MsgUsernameTaken)
		}
	}
	if err != nil {
		return models.UserCreated{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.Int64("id", id))

	return models.UserCreated{
		Email:     in.Email,
		ID:        id,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}, nil
}

// List возвращает страницу пользователей и их общее количество.
func (s *Service) List(ctx context.Context, viewer models.Viewer, limit, offset int) ([]models.UserProfile, int, error) {
	records, total, err := s.repo.ListUsers(ctx, viewer.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out := make([]models.UserProfile, len(records))
	for i, r := range records {
		out[i] = r.Profile(s.images.URL)
	}
	return out, total, nil
}

// Get возвращает профиль пользователя с признаком подписки зрителя.
func (s *Service) Get(ctx context.Context, viewer models.Viewer, id int64) (models.UserProfile, error) {
	r, err := s.repo.UserByID(ctx, id, viewer.ID)
	if err != nil {
		return models.UserProfile{}, err
	}
	return r.Profile(s.images.URL), nil
}

// Me возвращает профиль текущего пользователя.
func (s *Service) Me(ctx context.Context, viewer models.Viewer) (models.UserProfile, error) {
	if !viewer.Authenticated() {
		return models.UserProfile{}, models.ErrUnauthorized
	}
	return s.Get(ctx, viewer, viewer.ID)
}

// ChangePassword меняет пароль после проверки текущего.
func (s *Service) ChangePassword(ctx context.Context, viewer models.Viewer, in models.PasswordChange) error {
	const op = "user.ChangePassword"
	if !viewer.Authenticated() {
		return models.ErrUnauthorized
	}
	u, err := s.repo.UserByID(ctx, viewer.ID, viewer.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	errs := s.validate.PasswordChange(in, u.User)
	if in.CurrentPassword != "" && password.CompareHash(u.PasswordHash, in.CurrentPassword) != nil {
		errs.Add("current_password", validation.MsgWrongPassword)
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	hashed, err := password.GetHash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdatePassword(ctx, viewer.ID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("password changed", slog.Int64("user_id", viewer.ID))
	return nil
}

// SetAvatar сохраняет новый аватар, удаляет предыдущий и возвращает ссылку на новый.
func (s *Service) SetAvatar(ctx context.Context, viewer models.Viewer, in models.AvatarUpload) (string, error) {
	const op = "user.SetAvatar"
	if !viewer.Authenticated() {
		return "", models.ErrUnauthorized
	}
	if err := s.validate.Struct(in).OrNil(); err != nil {
		return "", err
	}
	img, err := base64image.Decode(in.Avatar)
	if err != nil {
		return "", validation.Single("avatar", validation.MsgInvalidImage)
	}

	key, err := s.images.Save(ctx, images.DirAvatars, img)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	previous, err := s.repo.SetAvatar(ctx, viewer.ID, key)
	if err != nil {
		s.dropImage(ctx, key)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.dropImage(ctx, previous)
	return s.images.URL(key), nil
}

// DeleteAvatar удаляет аватар текущего пользователя.
func (s *Service) DeleteAvatar(ctx context.Context, viewer models.Viewer) error {
	const op = "user.DeleteAvatar"
	if !viewer.Authenticated() {
		return models.ErrUnauthorized
	}
	previous, err := s.repo.SetAvatar(ctx, viewer.ID, "")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.dropImage(ctx, previous)
	return nil
}

// Subscribe подписывает зрителя на автора и возвращает автора с его рецептами.
// recipesLimit < 0 означает «без ограничения».
func (s *Service) Subscribe(ctx context.Context, viewer models.Viewer, authorID int64, recipesLimit int) (models.UserWithRecipes, error) {
	if !viewer.Authenticated() {
		return models.UserWithRecipes{}, models.ErrUnauthorized
	}
	author, err := s.repo.UserByID(ctx, authorID, viewer.ID)
	if err != nil {
		return models.UserWithRecipes{}, err
	}
	if author.ID == viewer.ID {
		return models.UserWithRecipes{}, models.ErrSelfSubscription
	}
	if err := s.repo.AddRelation(ctx, models.RelationSubscription, viewer.ID, authorID); err != nil {
		return models.UserWithRecipes{}, err
	}
	s.log.Info("user subscribed", slog.Int64("user_id", viewer.ID), slog.Int64("author_id", authorID))

	event := rabbitmq.UserSubscribed{UserID: viewer.ID, AuthorID: authorID}
	if err := s.events.Publish(ctx, rabbitmq.KeyUserSubscribed, event); err != nil {
		s.log.Warn("failed to publish subscription event", slog.Int64("author_id", authorID), sl.Err(err))
	}

	author.IsSubscribed = true
	out, err := s.withRecipes(ctx, []models.UserRecord{author}, recipesLimit)
	if err != nil {
		return models.UserWithRecipes{}, err
	}
	return out[0], nil
}

// Unsubscribe отменяет подписку зрителя на автора.
func (s *Service) Unsubscribe(ctx context.Context, viewer models.Viewer, authorID int64) error {
	if !viewer.Authenticated() {
		return models.ErrUnauthorized
	}
	if _, err := s.repo.UserByID(ctx, authorID, viewer.ID); err != nil {
		return err
	}
	return s.repo.RemoveRelation(ctx, models.RelationSubscription, viewer.ID, authorID)
}

// Subscriptions возвращает страницу авторов, на которых подписан зритель.
func (s *Service) Subscriptions(ctx context.Context, viewer models.Viewer, limit, offset, recipesLimit int) ([]models.UserWithRecipes, int, error) {
	if !viewer.Authenticated() {
		return nil, 0, models.ErrUnauthorized
	}
	authors, total, err := s.repo.Subscriptions(ctx, viewer.ID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.withRecipes(ctx, authors, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Service) withRecipes(ctx context.Context, authors []models.UserRecord, recipesLimit int) ([]models.UserWithRecipes, error) {
	out := make([]models.UserWithRecipes, len(authors))
	if len(authors) == 0 {
		return out, nil
	}
	ids := make([]int64, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	recipes, err := s.repo.AuthorRecipes(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	for i, a := range authors {
		list := make([]models.RecipeShort, 0, len(recipes[a.ID]))
		for _, r := range recipes[a.ID] {
			list = append(list, r.WithImageURL(s.images.URL))
		}
		out[i] = models.UserWithRecipes{
			UserProfile:  a.Profile(s.images.URL),
			Recipes:      list,
			RecipesCount: a.RecipesCount,
		}
	}
	return out, nil
}

func (s *Service) dropImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		s.log.Warn("failed to delete image", slog.String("key", key), sl.Err(err))
	}
}
