// Package container wires the application dependency graph: config, database
// pool, cache, repositories, services, and HTTP handlers.
package container

import (
	"context"
	"fmt"

	"github.com/rlcurrall/collection-example/internal/config"
	infracache "github.com/rlcurrall/collection-example/internal/infrastructure/cache"
	"github.com/rlcurrall/collection-example/internal/infrastructure/database"
	"github.com/rlcurrall/collection-example/pkg/cache"
	"github.com/rlcurrall/collection-example/pkg/logger"
	"github.com/rlcurrall/collection-example/pkg/token"

	authHandler "github.com/rlcurrall/collection-example/internal/domains/auth/handler"
	"github.com/rlcurrall/collection-example/internal/domains/comic"
	comicHandler "github.com/rlcurrall/collection-example/internal/domains/comic/handler"
	comicRepo "github.com/rlcurrall/collection-example/internal/domains/comic/repository"
	comicService "github.com/rlcurrall/collection-example/internal/domains/comic/service"
)

// Container holds every singleton the application needs. Everything here is
// read-only after NewContainer returns.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Tokens *token.Manager

	ComicRepo    comic.Repository
	ComicService comic.Service

	ComicHandler *comicHandler.Handler
	AuthHandler  *authHandler.Handler

	redis *infracache.RedisCache
}

// NewContainer builds the dependency graph. Any failure aborts startup.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment)

	db := database.NewPostgresDB(cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err := db.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Tokens: token.NewManager(cfg.Auth.JWTSecret),
	}

	// Cache is optional; without REDIS_HOST every lookup is a miss.
	if cfg.Redis.Host != "" {
		redis := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redis.Ping(context.Background()); err != nil {
			logger.Error("redis unreachable, running without cache", err)
			c.Cache = cache.NewNoop()
		} else {
			c.redis = redis
			c.Cache = redis
		}
	} else {
		c.Cache = cache.NewNoop()
	}

	c.ComicRepo = comicRepo.NewPostgresRepository(db.Pool)
	c.ComicService = comicService.NewComicService(c.ComicRepo)
	c.ComicHandler = comicHandler.NewHandler(c.ComicService, c.Cache)
	c.AuthHandler = authHandler.NewHandler()

	return c, nil
}

// Cleanup releases held resources on shutdown.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("redis close failed", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
