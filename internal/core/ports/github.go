package ports

import (
	"context"
	"time"

	"github.com/devconnector/social-api/internal/core/domain"
)

// RepoFetcher lists a GitHub user's most recent repositories.
type RepoFetcher interface {
	ListRepos(ctx context.Context, username string) ([]domain.Repo, error)
}

// RepoCache stores fetched repository listings for a short time.
type RepoCache interface {
	// Get returns ok=false on a cache miss.
	Get(ctx context.Context, username string) (repos []domain.Repo, ok bool, err error)
	Set(ctx context.Context, username string, repos []domain.Repo, ttl time.Duration) error
}
