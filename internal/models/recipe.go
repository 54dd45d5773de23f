package models

// Границы для времени приготовления и количества ингредиента.
const (
	MinAmount = 1
	MaxAmount = 32000
)

// Tag метка для фильтрации рецептов.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Ingredient запись каталога ингредиентов.
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredient ингредиент в составе рецепта. ID указывает на ингредиент каталога.
type RecipeIngredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeRecord рецепт, прочитанный из хранилища, вместе с вычисляемыми
// относительно зрителя полями. Image хранит ключ изображения, а не URL.
type RecipeRecord struct {
	ID               int64
	Name             string
	Text             string
	Image            string
	CookingTime      int
	Author           UserRecord
	Tags             []Tag
	Ingredients      []RecipeIngredient
	IsFavorited      bool
	IsInShoppingCart bool
}

// Recipe полное представление рецепта в ответах API.
type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           UserProfile        `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Image            string             `json:"image"`
	Name             string             `json:"name"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// RecipeShort сокращённое представление рецепта для избранного, корзины и подписок.
type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// IngredientAmount строка ингредиента во входящем запросе.
type IngredientAmount struct {
	ID     int64 `json:"id" validate:"required"`
	Amount int   `json:"amount" validate:"min=1,max=32000"`
}

// RecipeInput тело запроса на создание или частичное обновление рецепта.
// Поля-указатели позволяют отличить отсутствующий ключ от пустого значения.
type RecipeInput struct {
	Ingredients *[]IngredientAmount `json:"ingredients"`
	Tags        *[]int64            `json:"tags"`
	Image       *string             `json:"image"`
	Name        *string             `json:"name"`
	Text        *string             `json:"text"`
	CookingTime *int                `json:"cooking_time"`
}

// RecipeWrite проверенные данные для записи рецепта в хранилище.
// nil в поле означает «не изменять» при обновлении.
type RecipeWrite struct {
	Name        *string
	Text        *string
	Image       *string
	CookingTime *int
	Tags        []int64
	Ingredients []IngredientAmount
	SetTags     bool
	SetIngreds  bool
}

// RecipeFilter параметры фильтрации списка рецептов.
type RecipeFilter struct {
	AuthorID         int64
	Tags             []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// CartLine ингредиент одного из рецептов корзины.
type CartLine struct {
	Name   string
	Unit   string
	Amount int
}

// Relation вид связи пользователя с объектом, управляемой переключателями.
type Relation string

const (
	// RelationFavorite избранные рецепты.
	RelationFavorite Relation = "favorite"
	// RelationCart рецепты в списке покупок.
	RelationCart Relation = "cart"
	// RelationSubscription подписки на авторов.
	RelationSubscription Relation = "subscription"
)

// Present строит представление рецепта для ответа API.
func (r RecipeRecord) Present(imageURL func(string) string) Recipe {
	tags := r.Tags
	if tags == nil {
		tags = []Tag{}
	}
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []RecipeIngredient{}
	}
	return Recipe{
		ID:               r.ID,
		Tags:             tags,
		Author:           r.Author.Profile(imageURL),
		Ingredients:      ingredients,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Image:            imageURL(r.Image),
		Name:             r.Name,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

// WithImageURL возвращает копию, в которой ключ изображения заменён ссылкой.
func (r RecipeShort) WithImageURL(imageURL func(string) string) RecipeShort {
	r.Image = imageURL(r.Image)
	return r
}
