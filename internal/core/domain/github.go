package domain

import "time"

// Repo is the subset of a GitHub repository shown on a profile page.
type Repo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description,omitempty"`
	Language        string    `json:"language,omitempty"`
	StargazersCount int64     `json:"stargazers_count"`
	WatchersCount   int64     `json:"watchers_count"`
	ForksCount      int64     `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}
