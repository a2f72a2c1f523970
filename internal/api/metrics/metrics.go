// Package metrics defines the domain Prometheus metrics of the social API and
// the instrumentation that feeds them. Domain metrics register with the
// default registry on package init through promauto; HTTP request metrics
// come from echoprometheus under the same namespace.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devconnector"

// ── Accounts ─────────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsDeletedTotal counts cascading account deletions.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of deleted accounts.",
	},
)

// ── Posts ────────────────────────────────────────────────────────────────────

var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// PostInteractionsTotal counts successful post mutations.
// Label:
//   - action: "like", "unlike", "comment", "uncomment", "delete"
var PostInteractionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_interactions_total",
		Help:      "Total number of post interactions, by action.",
	},
	[]string{"action"},
)

// ── GitHub proxy ─────────────────────────────────────────────────────────────

// GithubCacheTotal counts repo cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var GithubCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "github_cache_lookups_total",
		Help:      "Total number of GitHub repo cache lookups, by result.",
	},
	[]string{"result"},
)

// GithubRequestDuration measures upstream GitHub calls.
// Label:
//   - outcome: "ok", "not_found" or "error"
var GithubRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "github_request_duration_seconds",
		Help:      "Duration of upstream GitHub API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
