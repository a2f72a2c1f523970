package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")

// Social platforms accepted on a profile, in the order they are collected.
var SocialPlatforms = []string{"youtube", "twitter", "facebook", "linkedin", "instagram"}

// Experience is a single job entry on a profile.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is a single school entry on a profile.
type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Profile is the one-per-user professional profile document.
type Profile struct {
	ID             string            `json:"id"`
	UserID         string            `json:"-"`
	User           *UserSummary      `json:"user,omitempty"`
	Company        string            `json:"company,omitempty"`
	Website        string            `json:"website,omitempty"`
	Location       string            `json:"location,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	Status         string            `json:"status"`
	GithubUsername string            `json:"githubusername,omitempty"`
	Skills         []string          `json:"skills"`
	Social         map[string]string `json:"social,omitempty"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	Date           time.Time         `json:"date"`
}

// ProfileFields is a partial profile update. A nil field is left untouched
// by the store; a non-nil field overwrites the stored value.
type ProfileFields struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string
	Social         map[string]string
}
