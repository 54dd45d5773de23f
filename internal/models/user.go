// Package models содержит доменные структуры foodgram: пользователей, рецепты,
// теги и ингредиенты, а также их представления для JSON-ответов API.
package models

const (
	// RoleUser роль обычного пользователя, назначается при регистрации.
	RoleUser = "user"
	// RoleAdmin роль администратора, может изменять любые рецепты.
	RoleAdmin = "admin"
)

// Viewer описывает пользователя, от имени которого выполняется запрос.
// Нулевое значение соответствует анонимному посетителю.
type Viewer struct {
	ID   int64
	Role string
}

// Authenticated сообщает, представлен ли запрос аутентифицированным пользователем.
func (v Viewer) Authenticated() bool {
	return v.ID > 0
}

// IsAdmin сообщает, обладает ли пользователь правами администратора.
func (v Viewer) IsAdmin() bool {
	return v.Authenticated() && v.Role == RoleAdmin
}

// User представляет зарегистрированного пользователя так, как он хранится в базе.
type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Avatar       string // Ключ изображения в хранилище, пустая строка, если аватара нет
	Role         string
}

// UserRecord пользователь с вычисляемыми относительно зрителя полями.
type UserRecord struct {
	User
	IsSubscribed bool
	RecipesCount int
}

// UserRegistration данные запроса на регистрацию.
type UserRegistration struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required"`
}

// PasswordChange данные запроса на смену пароля.
type PasswordChange struct {
	NewPassword     string `json:"new_password" validate:"required"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

// Credentials данные запроса на получение токена.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AvatarUpload тело запроса на загрузку аватара (base64 data URI).
type AvatarUpload struct {
	Avatar string `json:"avatar" validate:"required"`
}

// UserCreated ответ на успешную регистрацию.
type UserCreated struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserProfile публичное представление пользователя.
type UserProfile struct {
	Email        string  `json:"email"`
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

// UserWithRecipes автор в списке подписок вместе с его рецептами.
type UserWithRecipes struct {
	UserProfile
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}

// Profile строит публичное представление пользователя. imageURL превращает ключ
// изображения в ссылку.
func (u UserRecord) Profile(imageURL func(string) string) UserProfile {
	p := UserProfile{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
	if u.Avatar != "" {
		avatar := imageURL(u.Avatar)
		p.Avatar = &avatar
	}
	return p
}
