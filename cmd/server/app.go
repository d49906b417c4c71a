package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/cache"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger

	db *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	identityResolver *auth.IdentityResolver
	taskService      *service.TaskService

	responseCache cache.Cache
	cacheTTL      time.Duration
}

// newApplication connects to the database, applies migrations, and wires
// stores, services, and the response cache.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := postgres.MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database migrations applied")

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewUserStore(db)
	taskStore := postgres.NewTaskStore(db)
	bcryptHasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	responseCache, err := newResponseCache(ctx, cfg.Cache)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           slog.Default(),
		db:               db,
		userStore:        userStore,
		taskStore:        taskStore,
		jwtService:       jwtService,
		passwordHasher:   bcryptHasher,
		passwordVerifier: bcryptHasher,
		identityResolver: auth.NewIdentityResolver(jwtService, userStore),
		taskService:      service.NewTaskService(taskStore),
		responseCache:    responseCache,
		cacheTTL:         time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	}, nil
}

// newResponseCache picks the cache backend: redis when a URL is
// configured, otherwise an in-process cache.
func newResponseCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		slog.Info("Using in-process response cache")
		return cache.NewMemoryCache(), nil
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("Using redis response cache")
	return redisCache, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database", "error", err)
		}
	}
}
