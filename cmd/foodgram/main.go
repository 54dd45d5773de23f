// Package main Foodgram API
//
// @title           Foodgram API
// @version         1.0
// @description     API сервиса публикации рецептов
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /api
//
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Введите "Token" и токен через пробел.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/foodgram/internal/app/foodgram"
	"github.com/magabrotheeeer/foodgram/internal/cache"
	"github.com/magabrotheeeer/foodgram/internal/config"
	"github.com/magabrotheeeer/foodgram/internal/lib/sl"
	"github.com/magabrotheeeer/foodgram/internal/migrations"
	"github.com/magabrotheeeer/foodgram/internal/models"
	catalogservice "github.com/magabrotheeeer/foodgram/internal/services/catalog"
	"github.com/magabrotheeeer/foodgram/internal/storage"
)

const envProd = "prod"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [serve | load-ingredients <file.json> | make-admin <email>]\n", os.Args[0])
	}
	flag.Parse()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "", "serve":
		err = serve(ctx, cfg, logger)
	case "load-ingredients":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(2)
		}
		err = loadIngredients(ctx, cfg, logger, flag.Arg(1))
	case "make-admin":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(2)
		}
		err = makeAdmin(ctx, cfg, logger, flag.Arg(1))
	default:
		logger.Error("unknown command", slog.String("command", cmd))
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("command failed", sl.Err(err))
		os.Exit(1)
	}
}

func setupLogger(env string) *slog.Logger {
	if env == envProd {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting foodgram", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	app, err := foodgram.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("app stopped with error: %w", err)
	}

	logger.Info("foodgram stopped gracefully")
	return nil
}

// loadIngredients импортирует справочник ингредиентов из JSON-файла.
func loadIngredients(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string) error {
	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var c catalogservice.Cache
	if cfg.RedisAddress != "" {
		redis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, ingredient cache is not invalidated", sl.Err(err))
		} else {
			defer redis.Close()
			c = redis
		}
	}

	n, err := catalogservice.NewService(db, c, cfg.CacheTTL, logger).LoadIngredients(ctx, f)
	if err != nil {
		return err
	}
	logger.Info("ingredients imported", slog.String("file", path), slog.Int("changed", n))
	return nil
}

// makeAdmin выдаёт пользователю роль администратора.
func makeAdmin(ctx context.Context, cfg *config.Config, logger *slog.Logger, email string) error {
	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SetRole(ctx, email, models.RoleAdmin); err != nil {
		return err
	}
	logger.Info("user promoted to admin", slog.String("email", email))
	return nil
}

func openStorage(cfg *config.Config) (*storage.Storage, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
