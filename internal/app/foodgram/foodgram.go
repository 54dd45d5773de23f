// Package foodgram собирает зависимости HTTP-сервиса foodgram и управляет его жизненным циклом.
package foodgram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/foodgram/internal/cache"
	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/http/paginate"
	"github.com/magabrotheeeer/foodgram/internal/lib/jwt"
	"github.com/magabrotheeeer/foodgram/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/migrations"
	authservice "github.com/magabrotheeeer/foodgram/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/foodgram/internal/services/catalog"
	recipeservice "github.com/magabrotheeeer/foodgram/internal/services/recipe"
	userservice "github.com/magabrotheeeer/foodgram/internal/services/user"
	"github.com/magabrotheeeer/foodgram/internal/storage"
	"github.com/magabrotheeeer/foodgram/internal/storage/images"
	"github.com/magabrotheeeer/foodgram/internal/validation"
)

const shutdownTimeout = 15 * time.Second

// publisher публикует доменные события в брокер.
type publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// App хранит HTTP-сервер и ресурсы, которые нужно освободить при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	db      *storage.Storage
	cache   *cache.Cache
	closers []io.Closer
}

// Services сервисы бизнес-логики, из которых строятся маршруты.
type Services struct {
	Catalog *catalogservice.Service
	Recipes *recipeservice.Service
	Users   *userservice.Service
	Auth    *authservice.Service
}

// New подключается к PostgreSQL, Redis и RabbitMQ, применяет миграции
// и собирает маршрутизатор.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "foodgram.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{logger: logger, db: db, cache: cacheRedis}

	events, err := app.connectBroker(cfg.RabbitMQ)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	store, err := newImageStore(ctx, cfg)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	validate := validation.New()
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	services := Services{
		Catalog: catalogservice.NewService(db, cacheRedis, cfg.CacheTTL, logger),
		Recipes: recipeservice.NewService(db, store, events, validate, logger),
		Users:   userservice.NewService(db, store, events, validate, logger),
		Auth:    authservice.NewService(db, cacheRedis, jwtMaker, validate, logger),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:    logger,
		Config:    cfg,
		Services:  services,
		Paginator: paginate.New(cfg.BaseURL, cfg.PageSize, cfg.MaxPageSize),
		Registry:  registry,
		Store:     store,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) connectBroker(cfg config.RabbitMQ) (publisher, error) {
	if cfg.RabbitMQURL == "" {
		a.logger.Warn("rabbitmq url is empty, events are discarded")
		return rabbitmq.Discard{}, nil
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQExchange, rabbitmq.EventQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	pub := rabbitmq.NewPublisher(ch, cfg.RabbitMQExchange)
	a.closers = append(a.closers, pub, conn)
	return pub, nil
}

func newImageStore(ctx context.Context, cfg *config.Config) (images.Store, error) {
	if cfg.MediaBackend == "s3" {
		store, err := images.NewS3Store(ctx, images.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := images.NewLocalStore(cfg.MediaDir, strings.TrimRight(cfg.BaseURL, "/")+cfg.MediaURLPrefix)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Run запускает HTTP-сервер и ждёт отмены ctx, после чего останавливает его
// и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close broker connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
