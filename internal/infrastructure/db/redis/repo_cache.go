package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devconnector/social-api/internal/core/domain"
)

const repoKeyPrefix = "github:repos:"

// RepoCache stores GitHub repository listings per username.
// Key format: github:repos:<lowercased username>
type RepoCache struct {
	client redis.Cmdable
}

func NewRepoCache(client redis.Cmdable) *RepoCache {
	return &RepoCache{client: client}
}

// Get returns the cached listing. A miss is reported as ok=false with a nil
// error.
func (c *RepoCache) Get(ctx context.Context, username string) ([]domain.Repo, bool, error) {
	raw, err := c.client.Get(ctx, repoKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("repo cache get: %w", err)
	}

	var repos []domain.Repo
	if err := json.Unmarshal(raw, &repos); err != nil {
		return nil, false, fmt.Errorf("repo cache decode: %w", err)
	}
	return repos, true, nil
}

// Set stores repos for ttl.
func (c *RepoCache) Set(ctx context.Context, username string, repos []domain.Repo, ttl time.Duration) error {
	raw, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("repo cache encode: %w", err)
	}
	if err := c.client.Set(ctx, repoKey(username), raw, ttl).Err(); err != nil {
		return fmt.Errorf("repo cache set: %w", err)
	}
	return nil
}

func repoKey(username string) string {
	return repoKeyPrefix + strings.ToLower(username)
}
