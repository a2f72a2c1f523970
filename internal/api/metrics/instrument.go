package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/devconnector/social-api/internal/core/domain"
	"github.com/devconnector/social-api/internal/core/ports"
)

// Middleware records request count, latency and sizes under the
// devconnector_http_* names. status resolves the code for handler errors
// that the error handler has not written yet; a nil reg means the default
// registry.
func Middleware(reg prometheus.Registerer, status func(echo.Context, error) int) echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:          namespace,
		Subsystem:          "http",
		Registerer:         reg,
		StatusCodeResolver: status,
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() echo.HandlerFunc {
	return echoprometheus.NewHandler()
}

type instrumentedFetcher struct {
	next ports.RepoFetcher
	hist *prometheus.HistogramVec
}

// InstrumentFetcher times every upstream call made by f.
func InstrumentFetcher(f ports.RepoFetcher) ports.RepoFetcher {
	return &instrumentedFetcher{next: f, hist: GithubRequestDuration}
}

func (i *instrumentedFetcher) ListRepos(ctx context.Context, username string) ([]domain.Repo, error) {
	start := time.Now()
	repos, err := i.next.ListRepos(ctx, username)

	outcome := "ok"
	switch {
	case errors.Is(err, domain.ErrGithubProfileNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	i.hist.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return repos, err
}

type instrumentedCache struct {
	ports.RepoCache
	lookups *prometheus.CounterVec
}

// InstrumentCache counts hits and misses on c.
func InstrumentCache(c ports.RepoCache) ports.RepoCache {
	return &instrumentedCache{RepoCache: c, lookups: GithubCacheTotal}
}

func (i *instrumentedCache) Get(ctx context.Context, username string) ([]domain.Repo, bool, error) {
	repos, ok, err := i.RepoCache.Get(ctx, username)
	switch {
	case err != nil:
		i.lookups.WithLabelValues("error").Inc()
	case ok:
		i.lookups.WithLabelValues("hit").Inc()
	default:
		i.lookups.WithLabelValues("miss").Inc()
	}
	return repos, ok, err
}
