package foodgram

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация Swagger-спецификации.
	_ "github.com/magabrotheeeer/foodgram/docs"

	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/auth/logout"
	ingredientlist "github.com/magabrotheeeer/foodgram/internal/http/handlers/ingredient/list"
	ingredientread "github.com/magabrotheeeer/foodgram/internal/http/handlers/ingredient/read"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/create"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/download"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/link"
	recipelist "github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/list"
	reciperead "github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/read"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/relation"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/remove"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/recipe/update"
	taglist "github.com/magabrotheeeer/foodgram/internal/http/handlers/tag/list"
	tagread "github.com/magabrotheeeer/foodgram/internal/http/handlers/tag/read"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/user/avatar"
	userlist "github.com/magabrotheeeer/foodgram/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/user/password"
	userread "github.com/magabrotheeeer/foodgram/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/user/register"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/user/subscribe"
	"github.com/magabrotheeeer/foodgram/internal/http/handlers/user/subscriptions"
	"github.com/magabrotheeeer/foodgram/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foodgram/internal/http/paginate"
	"github.com/magabrotheeeer/foodgram/internal/http/response"
	"github.com/magabrotheeeer/foodgram/internal/models"
	"github.com/magabrotheeeer/foodgram/internal/storage/images"
)

// Deps всё, что нужно для регистрации маршрутов.
type Deps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Services  Services
	Paginator *paginate.Paginator
	Registry  *prometheus.Registry
	Store     images.Store
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	logger := d.Logger
	svc := d.Services
	cfg := d.Config
	metrics := middlewarectx.NewMetrics(d.Registry)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.StripSlashes,
		metrics.Middleware,
		middlewarectx.Authentication(svc.Auth, logger),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, r, http.StatusNotFound, response.MsgNotFound)
	})
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	writeLimit := middlewarectx.RateLimit(logger, cfg.RPS, cfg.Burst)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth/token", func(r chi.Router) {
			r.With(writeLimit).Post("/login", login.New(logger, svc.Auth).ServeHTTP)
			r.With(middlewarectx.RequireAuth, writeLimit).Post("/logout", logout.New(logger, svc.Auth).ServeHTTP)
		})

		r.Get("/tags", taglist.New(logger, svc.Catalog).ServeHTTP)
		r.Get("/tags/{id}", tagread.New(logger, svc.Catalog).ServeHTTP)
		r.Get("/ingredients", ingredientlist.New(logger, svc.Catalog).ServeHTTP)
		r.Get("/ingredients/{id}", ingredientread.New(logger, svc.Catalog).ServeHTTP)

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipelist.New(logger, svc.Recipes, d.Paginator).ServeHTTP)
			r.Get("/{id}", reciperead.New(logger, svc.Recipes).ServeHTTP)
			r.Put("/{id}", handlers.MethodNotAllowed)
			r.Get("/{id}/get-link", link.New(logger, svc.Recipes, cfg.BaseURL).ServeHTTP)
			r.With(middlewarectx.RequireAuth).Get("/download_shopping_cart", download.New(logger, svc.Recipes).ServeHTTP)

			// Группа с обязательной аутентификацией
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAuth, writeLimit)
				r.Post("/", create.New(logger, svc.Recipes).ServeHTTP)
				r.Patch("/{id}", update.New(logger, svc.Recipes).ServeHTTP)
				r.Delete("/{id}", remove.New(logger, svc.Recipes).ServeHTTP)

				favorite := relation.New(logger, svc.Recipes, models.RelationFavorite)
				r.Post("/{id}/favorite", favorite.ServeHTTP)
				r.Delete("/{id}/favorite", favorite.ServeHTTP)

				cart := relation.New(logger, svc.Recipes, models.RelationCart)
				r.Post("/{id}/shopping_cart", cart.ServeHTTP)
				r.Delete("/{id}/shopping_cart", cart.ServeHTTP)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userlist.New(logger, svc.Users, d.Paginator).ServeHTTP)
			r.With(writeLimit).Post("/", register.New(logger, svc.Users).ServeHTTP)
			r.Get("/{id}", userread.New(logger, svc.Users).ServeHTTP)
			r.With(middlewarectx.RequireAuth).Get("/me", me.New(logger, svc.Users).ServeHTTP)
			r.With(middlewarectx.RequireAuth).Get("/subscriptions", subscriptions.New(logger, svc.Users, d.Paginator).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAuth, writeLimit)

				avatarHandler := avatar.New(logger, svc.Users)
				r.Put("/me/avatar", avatarHandler.ServeHTTP)
				r.Delete("/me/avatar", avatarHandler.ServeHTTP)

				r.Post("/set_password", password.New(logger, svc.Users).ServeHTTP)

				subscribeHandler := subscribe.New(logger, svc.Users)
				r.Post("/{id}/subscribe", subscribeHandler.ServeHTTP)
				r.Delete("/{id}/subscribe", subscribeHandler.ServeHTTP)
			})
		})
	})

	if local, ok := d.Store.(*images.LocalStore); ok {
		prefix := "/" + strings.Trim(cfg.MediaURLPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(local.Root()))))
	}

	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
