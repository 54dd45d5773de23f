// Package auth выдаёт и отзывает токены доступа и определяет пользователя по токену.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/foodgram/internal/lib/jwt"
	"github.com/magabrotheeeer/foodgram/internal/lib/password"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

// UserRepository описывает контракт для поиска пользователей в базе данных.
type UserRepository interface {
	// UserByEmail возвращает пользователя по адресу электронной почты или models.ErrNotFound.
	UserByEmail(ctx context.Context, email string) (models.User, error)
	// UserRole возвращает текущую роль пользователя или models.ErrNotFound.
	UserRole(ctx context.Context, id int64) (string, error)
}

// RevocationStore хранит идентификаторы отозванных токенов.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Service отвечает за вход, выход и проверку токенов.
type Service struct {
	users    UserRepository
	revoked  RevocationStore
	jwtMaker jwt.Maker
	validate *validation.Validator
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, revoked RevocationStore, jwtMaker jwt.Maker, validate *validation.Validator, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		revoked:  revoked,
		jwtMaker: jwtMaker,
		validate: validate,
		log:      log,
	}
}

// Login проверяет email и пароль и возвращает новый токен доступа.
func (s *Service) Login(ctx context.Context, in models.Credentials) (string, error) {
	const op = "auth.Login"
	if errs := s.validate.Struct(in); len(errs) > 0 {
		return "", errs
	}
	user, err := s.users.UserByEmail(ctx, in.Email)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, in.Password); err != nil {
		return "", models.ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user logged in", slog.Int64("user_id", user.ID))
	return token, nil
}

// Logout отзывает токен до окончания срока его действия.
func (s *Service) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return models.ErrUnauthorized
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user logged out", slog.Int64("user_id", claims.UserID))
	return nil
}

// Authenticate проверяет токен и возвращает пользователя, от имени которого
// выполняется запрос. Роль читается из базы, а не из токена. Отозванный или
// некорректный токен, как и токен удалённого пользователя, даёт models.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) (models.Viewer, error) {
	const op = "auth.Authenticate"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return models.Viewer{}, models.ErrUnauthorized
	}
	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return models.Viewer{}, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return models.Viewer{}, models.ErrUnauthorized
	}
	role, err := s.users.UserRole(ctx, claims.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return models.Viewer{}, models.ErrUnauthorized
	}
	if err != nil {
		return models.Viewer{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.Viewer{ID: claims.UserID, Role: role}, nil
}
