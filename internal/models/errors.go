package models

import (
	"errors"
	"fmt"
)

// Ошибки бизнес-логики. Слой HTTP сопоставляет их со статусами ответа.
var (
	// ErrNotFound запрошенный объект не существует.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists объект уже присутствует в наборе (избранное, корзина, подписки).
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotPresent объект отсутствует в наборе, удалять нечего.
	ErrNotPresent = errors.New("not present")
	// ErrSelfSubscription попытка подписаться на самого себя.
	ErrSelfSubscription = errors.New("self subscription")
	// ErrForbidden у пользователя нет прав на изменение объекта.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized операция требует аутентификации.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials неверная пара email/пароль при входе.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UniqueError сообщает о нарушении ограничения уникальности в хранилище.
// Constraint содержит имя нарушенного ограничения, например users_email_key.
type UniqueError struct {
	Constraint string
}

func (e *UniqueError) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

// Is позволяет проверять UniqueError через errors.Is(err, ErrAlreadyExists).
func (e *UniqueError) Is(target error) bool {
	return target == ErrAlreadyExists
}
