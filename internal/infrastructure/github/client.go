package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/devconnector/social-api/internal/core/domain"
)

const (
	DefaultBaseURL = "https://api.github.com"
	userAgent      = "devconnector-social-api"
	repoLimit      = 5
	maxBodyBytes   = 1 << 20
)

// Config holds upstream settings. Token takes precedence over the
// client id/secret pair.
type Config struct {
	BaseURL      string
	Token        string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client implements ports.RepoFetcher against the GitHub REST API.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client
	log          zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
		httpClient.Timeout = cfg.Timeout
		cfg.ClientID, cfg.ClientSecret = "", ""
	}

	return &Client{
		baseURL:      base,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		http:         httpClient,
		log:          log,
	}
}

// ListRepos returns the user's most recently created public repositories.
func (c *Client) ListRepos(ctx context.Context, username string) ([]domain.Repo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.reposURL(username), nil)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("username", username).Msg("github request failed")
		return nil, fmt.Errorf("github %s: %w", username, domain.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		c.log.Warn().Int("status", resp.StatusCode).Str("username", username).Msg("github upstream error")
		return nil, fmt.Errorf("github status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	case resp.StatusCode != http.StatusOK:
		c.log.Debug().Int("status", resp.StatusCode).Str("username", username).Msg("github profile not found")
		return nil, domain.ErrGithubProfileNotFound
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("github read body: %w", domain.ErrUpstreamUnavailable)
	}
	return parseRepos(body)
}

func (c *Client) reposURL(username string) string {
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(repoLimit))
	q.Set("sort", "created")
	q.Set("direction", "desc")
	if c.clientID != "" && c.clientSecret != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	return fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())
}

// parseRepos keeps only the fields a profile page shows.
func parseRepos(body []byte) ([]domain.Repo, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("github payload: %w", domain.ErrUpstreamUnavailable)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, fmt.Errorf("github payload is not a list: %w", domain.ErrUpstreamUnavailable)
	}

	repos := make([]domain.Repo, 0, repoLimit)
	doc.ForEach(func(_, r gjson.Result) bool {
		repos = append(repos, domain.Repo{
			Name:            r.Get("name").String(),
			FullName:        r.Get("full_name").String(),
			HTMLURL:         r.Get("html_url").String(),
			Description:     r.Get("description").String(),
			Language:        r.Get("language").String(),
			StargazersCount: r.Get("stargazers_count").Int(),
			WatchersCount:   r.Get("watchers_count").Int(),
			ForksCount:      r.Get("forks_count").Int(),
			CreatedAt:       r.Get("created_at").Time().UTC(),
		})
		return len(repos) < repoLimit
	})
	return repos, nil
}
