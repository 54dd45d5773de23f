package rabbitmq

// Ключи маршрутизации доменных событий.
const (
	KeyRecipeCreated  = "recipe.created"
	KeyUserSubscribed = "user.subscribed"
)

// QueueConfig описывает очередь и ключ, по которому она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// EventQueues возвращает очереди, которые объявляются при старте сервиса.
func EventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "foodgram.recipes", RoutingKey: KeyRecipeCreated},
		{QueueName: "foodgram.subscriptions", RoutingKey: KeyUserSubscribed},
	}
}

// RecipeCreated публикуется после создания рецепта.
type RecipeCreated struct {
	RecipeID int64  `json:"recipe_id"`
	AuthorID int64  `json:"author_id"`
	Name     string `json:"name"`
}

// UserSubscribed публикуется после оформления подписки на автора.
type UserSubscribed struct {
	UserID   int64 `json:"user_id"`
	AuthorID int64 `json:"author_id"`
}
