package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnector/social-api/internal/core/domain"
	"github.com/devconnector/social-api/internal/core/ports"
)

const defaultRepoCacheTTL = 10 * time.Minute

type githubService struct {
	fetcher ports.RepoFetcher
	cache   ports.RepoCache
	ttl     time.Duration
	log     zerolog.Logger
}

// NewGithubService returns a GithubService. cache may be nil, in which case
// every call goes upstream.
func NewGithubService(fetcher ports.RepoFetcher, cache ports.RepoCache, ttl time.Duration, log zerolog.Logger) ports.GithubService {
	if ttl <= 0 {
		ttl = defaultRepoCacheTTL
	}
	return &githubService{fetcher: fetcher, cache: cache, ttl: ttl, log: log}
}

// Repos returns the latest repositories for username, served from cache
// when possible. Cache failures are logged and otherwise ignored.
func (s *githubService) Repos(ctx context.Context, username string) ([]domain.Repo, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, domain.ErrGithubProfileNotFound
	}

	// 1. Cache lookup.
	if s.cache != nil {
		repos, ok, err := s.cache.Get(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("repo cache read failed, fetching upstream")
		} else if ok {
			s.log.Debug().Str("username", username).Msg("repo cache hit")
			return repos, nil
		}
	}

	// 2. Upstream fetch.
	repos, err := s.fetcher.ListRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	// 3. Populate cache (non-fatal on failure).
	if s.cache != nil {
		if err := s.cache.Set(ctx, username, repos, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("repo cache write failed")
		}
	}

	return repos, nil
}
