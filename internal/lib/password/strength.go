package password

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinLength минимальная допустимая длина пароля.
const MinLength = 8

// maxSimilarity доля совпадения с атрибутом пользователя, начиная с которой пароль отклоняется.
const maxSimilarity = 0.7

// Сообщения об ошибках проверки стойкости.
const (
	MsgTooShort = "Введённый пароль слишком короткий. Он должен содержать как минимум 8 символов."
	MsgCommon   = "Введённый пароль слишком широко распространён."
	MsgNumeric  = "Введённый пароль состоит только из цифр."
	msgSimilar  = "Введённый пароль слишком похож на %s."
)

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwertyuiop": {}, "qwerty123": {}, "qwerty12345": {},
	"1q2w3e4r": {}, "1q2w3e4r5t": {}, "11111111": {}, "00000000": {}, "iloveyou": {},
	"sunshine": {}, "princess": {}, "football": {}, "baseball": {}, "welcome1": {},
	"superman": {}, "trustno1": {}, "starwars": {}, "whatever": {}, "letmein1": {},
	"admin123": {}, "administrator": {}, "abc12345": {}, "abcdefgh": {}, "zaq12wsx": {},
	"monkey123": {}, "dragon123": {}, "master123": {}, "michael1": {}, "jennifer": {},
	"computer": {}, "internet": {}, "asdfghjkl": {}, "asdf1234": {}, "changeme": {},
	"1qaz2wsx": {}, "qazwsxedc": {}, "password!": {}, "p@ssw0rd": {}, "welcome123": {},
}

// Attribute атрибут пользователя, на который пароль не должен быть похож.
type Attribute struct {
	Label string // Человекочитаемое название поля, например «имя пользователя»
	Value string
}

// Validate проверяет стойкость пароля и возвращает список нарушений.
// Пустой список означает, что пароль можно сохранять.
func Validate(pw string, attrs ...Attribute) []string {
	var problems []string

	for _, attr := range attrs {
		if isSimilar(pw, attr.Value) {
			problems = append(problems, fmt.Sprintf(msgSimilar, attr.Label))
			break
		}
	}
	if utf8.RuneCountInString(pw) < MinLength {
		problems = append(problems, MsgTooShort)
	}
	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(pw))]; ok {
		problems = append(problems, MsgCommon)
	}
	if pw != "" && strings.IndexFunc(pw, func(r rune) bool { return !unicode.IsDigit(r) }) == -1 {
		problems = append(problems, MsgNumeric)
	}
	return problems
}

// isSimilar сравнивает пароль с атрибутом и с каждой его частью
// (email режется по «@», имена по разделителям).
func isSimilar(pw, attr string) bool {
	if attr == "" || pw == "" {
		return false
	}
	pw = strings.ToLower(pw)
	parts := strings.FieldsFunc(strings.ToLower(attr), func(r rune) bool {
		return r == '@' || r == '.' || r == '_' || r == '-' || r == '+' || unicode.IsSpace(r)
	})
	parts = append(parts, strings.ToLower(attr))
	for _, part := range parts {
		if similarity(pw, part) >= maxSimilarity {
			return true
		}
	}
	return false
}

// similarity возвращает долю совпадения двух строк: 2*M/T, где M это длина
// наибольшей общей подстроки, T суммарная длина строк.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	longest := 0
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > longest {
					longest = curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return 2 * float64(longest) / float64(total)
}
