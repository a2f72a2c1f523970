package main

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devconnector/social-api/internal/api/metrics"
	"github.com/devconnector/social-api/internal/core/ports"
	"github.com/devconnector/social-api/internal/infrastructure/config"
	"github.com/devconnector/social-api/internal/infrastructure/db/redis"
)

// newRepoCache connects the GitHub response cache. The service runs uncached
// when no address is configured or the server does not answer; the returned
// client is nil in both cases.
func newRepoCache(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (ports.RepoCache, *goredis.Client) {
	if cfg.Addr == "" {
		log.Warn().Msg("REDIS_ADDR empty, github responses will not be cached")
		return nil, nil
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, github responses will not be cached")
		return nil, nil
	}

	log.Info().Str("addr", cfg.Addr).Msg("redis connected")
	return metrics.InstrumentCache(redis.NewRepoCache(rdb)), rdb
}
