package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/foodgram/internal/lib/password"
	"github.com/magabrotheeeer/foodgram/internal/models"
)

var usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// Validator оборачивает validator.Validate с правилами и сообщениями foodgram.
type Validator struct {
	validate *validator.Validate
}

// New создаёт Validator. Имена полей в ошибках берутся из json-тегов.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Struct проверяет структуру по validate-тегам.
func (v *Validator) Struct(s any) Errors {
	errs := Errors{}
	err := v.validate.Struct(s)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("non_field_errors", MsgInvalid)
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgEmail
	case "username":
		return MsgUsername
	case "min":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf(MsgMinValue, fe.Param())
		}
		return MsgInvalid
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf(MsgMaxValue, fe.Param())
		}
		return fmt.Sprintf(MsgMaxLength, fe.Param())
	default:
		return MsgInvalid
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Var проверяет одно значение по правилам tag и добавляет нарушения к полю field.
// Возвращает true, если нарушений нет.
func (v *Validator) Var(errs Errors, field string, value any, tag string) bool {
	err := v.validate.Var(value, tag)
	if err == nil {
		return true
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add(field, MsgInvalid)
		return false
	}
	for _, fe := range verrs {
		errs.Add(field, message(fe))
	}
	return false
}

// Registration проверяет данные регистрации, включая стойкость пароля.
func (v *Validator) Registration(in models.UserRegistration) Errors {
	errs := v.Struct(in)
	if in.Password != "" {
		problems := password.Validate(in.Password,
			password.Attribute{Label: "имя пользователя", Value: in.Username},
			password.Attribute{Label: "имя", Value: in.FirstName},
			password.Attribute{Label: "фамилия", Value: in.LastName},
			password.Attribute{Label: "адрес электронной почты", Value: in.Email},
		)
		for _, p := range problems {
			errs.Add("password", p)
		}
	}
	return errs
}

// PasswordChange проверяет запрос на смену пароля пользователя u.
// Совпадение текущего пароля проверяет сервис.
func (v *Validator) PasswordChange(in models.PasswordChange, u models.User) Errors {
	errs := v.Struct(in)
	if in.NewPassword != "" {
		problems := password.Validate(in.NewPassword,
			password.Attribute{Label: "имя пользователя", Value: u.Username},
			password.Attribute{Label: "имя", Value: u.FirstName},
			password.Attribute{Label: "фамилия", Value: u.LastName},
			password.Attribute{Label: "адрес электронной почты", Value: u.Email},
		)
		for _, p := range problems {
			errs.Add("new_password", p)
		}
	}
	return errs
}
