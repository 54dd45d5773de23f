package storage

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/foodgram/internal/models"
)

// userSelect выбирает пользователя вместе с вычисляемыми полями.
// $1: идентификатор зрителя (0 для анонимного).
const userSelect = `
	SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.avatar, u.role,
		EXISTS (SELECT 1 FROM subscriptions s WHERE s.user_id = $1 AND s.author_id = u.id),
		(SELECT COUNT(*) FROM recipes r WHERE r.author_id = u.id)
	FROM users u`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserRecord(row rowScanner) (models.UserRecord, error) {
	var u models.UserRecord
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Avatar, &u.Role, &u.IsSubscribed, &u.RecipesCount)
	return u, err
}

// CreateUser сохраняет нового пользователя и возвращает его идентификатор.
// Занятые email или username возвращаются как *models.UniqueError.
func (s *Storage) CreateUser(ctx context.Context, u models.User) (int64, error) {
	const op = "storage.CreateUser"
	role := u.Role
	if role == "" {
		role = models.RoleUser
	}
	var id int64
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, role).Scan(&id)
	if err != nil {
		return 0, wrap(op, err)
	}
	return id, nil
}

// UserByID возвращает пользователя с признаком подписки зрителя viewerID на него.
func (s *Storage) UserByID(ctx context.Context, id, viewerID int64) (models.UserRecord, error) {
	const op = "storage.UserByID"
	u, err := scanUserRecord(s.DB.QueryRowContext(ctx, userSelect+` WHERE u.id = $2`, viewerID, id))
	if err != nil {
		return models.UserRecord{}, wrap(op, err)
	}
	return u, nil
}

// UserByEmail возвращает пользователя по адресу электронной почты без учёта регистра.
func (s *Storage) UserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.UserByEmail"
	u, err := scanUserRecord(s.DB.QueryRowContext(ctx, userSelect+` WHERE lower(u.email) = lower($2)`, 0, email))
	if err != nil {
		return models.User{}, wrap(op, err)
	}
	return u.User, nil
}

// UserRole возвращает текущую роль пользователя.
func (s *Storage) UserRole(ctx context.Context, id int64) (string, error) {
	const op = "storage.UserRole"
	var role string
	if err := s.DB.QueryRowContext(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role); err != nil {
		return "", wrap(op, err)
	}
	return role, nil
}

// ListUsers возвращает страницу пользователей в порядке регистрации и их общее количество.
func (s *Storage) ListUsers(ctx context.Context, viewerID int64, limit, offset int) ([]models.UserRecord, int, error) {
	const op = "storage.ListUsers"
	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, wrap(op, err)
	}
	rows, err := s.DB.QueryContext(ctx, userSelect+` ORDER BY u.id LIMIT $2 OFFSET $3`, viewerID, limit, offset)
	if err != nil {
		return nil, 0, wrap(op, err)
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, wrap(op, err)
	}
	return users, total, nil
}

func collectUsers(rows *sql.Rows) ([]models.UserRecord, error) {
	defer rows.Close()
	users := make([]models.UserRecord, 0)
	for rows.Next() {
		u, err := scanUserRecord(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdatePassword заменяет хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const op = "storage.UpdatePassword"
	res, err := s.DB.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

// SetAvatar записывает ключ нового аватара (пустая строка удаляет аватар)
// и возвращает ключ предыдущего.
func (s *Storage) SetAvatar(ctx context.Context, id int64, key string) (string, error) {
	const op = "storage.SetAvatar"
	var previous string
	err := s.DB.QueryRowContext(ctx, `
		UPDATE users u SET avatar = $2
		FROM (SELECT id, avatar FROM users WHERE id = $1 FOR UPDATE) old
		WHERE u.id = old.id
		RETURNING old.avatar`, id, key).Scan(&previous)
	if err != nil {
		return "", wrap(op, err)
	}
	return previous, nil
}

// SetRole меняет роль пользователя с указанным email.
func (s *Storage) SetRole(ctx context.Context, email, role string) error {
	const op = "storage.SetRole"
	res, err := s.DB.ExecContext(ctx, `UPDATE users SET role = $2 WHERE lower(email) = lower($1)`, email, role)
	if err != nil {
		return wrap(op, err)
	}
	return expectAffected(op, res)
}

func expectAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return wrap(op, sql.ErrNoRows)
	}
	return nil
}
