// Package validation проверяет входящие данные запросов и собирает нарушения
// в единую ошибку, сгруппированную по полям.
package validation

import (
	"errors"
	"sort"
	"strings"
)

// Сообщения об ошибках, возвращаемые клиенту.
const (
	MsgRequired             = "Обязательное поле."
	MsgBlank                = "Это поле не может быть пустым."
	MsgEmptyList            = "Этот список не может быть пустым."
	MsgEmail                = "Введите правильный адрес электронной почты."
	MsgUsername             = "Неверное имя пользователя."
	MsgMaxLength            = "Убедитесь, что это значение содержит не более %s символов."
	MsgMinValue             = "Убедитесь, что это значение больше либо равно %s."
	MsgMaxValue             = "Убедитесь, что это значение меньше либо равно %s."
	MsgInvalid              = "Недопустимое значение."
	MsgDuplicateIngredients = "Ингредиенты не могут повторяться."
	MsgDuplicateTags        = "Теги не могут повторяться."
	MsgImageEmpty           = "Поле не может быть пустым."
	MsgInvalidImage         = "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	MsgDoesNotExist         = "Недопустимый первичный ключ \"%d\" - объект не существует."
	MsgEmailTaken           = "Пользователь с таким адресом электронной почты уже существует."
	MsgUsernameTaken        = "Пользователь с таким именем уже существует."
	MsgWrongPassword        = "Неверный пароль."
)

// Errors нарушения, сгруппированные по имени поля в JSON.
type Errors map[string][]string

// Add добавляет сообщение к полю.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge переносит в e все сообщения из other.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Has сообщает, есть ли нарушения у поля.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// OrNil возвращает e как error или nil, если нарушений нет.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, field := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[field], " "))
	}
	return b.String()
}

// AsErrors извлекает Errors из цепочки ошибок.
func AsErrors(err error) (Errors, bool) {
	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// Single возвращает ошибку с одним нарушением.
func Single(field, msg string) Errors {
	return Errors{field: {msg}}
}
