// @title                       DevConnector Social API
// @version                     1.0
// @description                 Developer social network: accounts, profiles, posts, likes and comments.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        x-auth-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnector/social-api/internal/api"
	"github.com/devconnector/social-api/internal/api/handler"
	"github.com/devconnector/social-api/internal/api/metrics"
	"github.com/devconnector/social-api/internal/core/service"
	"github.com/devconnector/social-api/internal/infrastructure/config"
	"github.com/devconnector/social-api/internal/infrastructure/db/mongo"
	"github.com/devconnector/social-api/internal/infrastructure/github"
	"github.com/devconnector/social-api/pkg/logger"
)

const (
	serviceName     = "social-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		AppName:     serviceName,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
		Timeout:     cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	checks := []handler.DependencyCheck{handler.MongoCheck(db)}

	cache, rdb := newRepoCache(ctx, cfg.Redis, logger.Component(log, "redis"))
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		checks = append(checks, handler.RedisCheck(rdb))
	}

	// --- Services ---
	users := mongo.NewUserRepository(db)
	profiles := mongo.NewProfileRepository(db)
	posts := mongo.NewPostRepository(db)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	fetcher := metrics.InstrumentFetcher(github.NewClient(github.Config{
		BaseURL:      cfg.Github.APIURL,
		Token:        cfg.Github.Token,
		ClientID:     cfg.Github.ClientID,
		ClientSecret: cfg.Github.ClientSecret,
		Timeout:      cfg.Github.Timeout,
	}, logger.Component(log, "github")))

	e := api.NewRouter(api.Deps{
		Log:       logger.Component(log, "http"),
		Tokens:    tokens,
		Auth:      service.NewAuthService(users, tokens, logger.Component(log, "auth")),
		Profiles:  service.NewProfileService(profiles, users, posts, logger.Component(log, "profiles")),
		Posts:     service.NewPostService(posts, users, logger.Component(log, "posts")),
		Github:    service.NewGithubService(fetcher, cache, cfg.Redis.CacheTTL, logger.Component(log, "github")),
		Checks:    checks,
		AuthRate:  cfg.Auth.RateLimit,
		AuthBurst: cfg.Auth.RateBurst,
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
