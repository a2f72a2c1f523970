package handler

import (
	"strings"
	"time"

	"github.com/devconnector/social-api/internal/core/domain"
	"github.com/devconnector/social-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string              `json:"error"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Users / auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"notblank"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Profile ---

type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"         validate:"notblank"`
	GithubUsername string `json:"githubusername"`
	// Skills is a comma separated list, e.g. "go, mongodb, docker".
	Skills    string `json:"skills"         validate:"notblank"`
	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

func (r profileRequest) toInput() ports.ProfileInput {
	return ports.ProfileInput{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		GithubUsername: r.GithubUsername,
		Skills:         r.Skills,
		Social: map[string]string{
			"youtube":   r.Youtube,
			"twitter":   r.Twitter,
			"facebook":  r.Facebook,
			"linkedin":  r.Linkedin,
			"instagram": r.Instagram,
		},
	}
}

type experienceRequest struct {
	Title       string `json:"title"       validate:"notblank"`
	Company     string `json:"company"     validate:"notblank"`
	Location    string `json:"location"`
	From        string `json:"from"        validate:"notblank"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (r experienceRequest) toInput() (ports.ExperienceInput, error) {
	from, to, err := parseRange(r.From, r.To)
	if err != nil {
		return ports.ExperienceInput{}, err
	}
	return ports.ExperienceInput{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		From:        from,
		To:          to,
		Current:     r.Current,
		Description: r.Description,
	}, nil
}

type educationRequest struct {
	School       string `json:"school"       validate:"notblank"`
	Degree       string `json:"degree"       validate:"notblank"`
	FieldOfStudy string `json:"fieldofstudy" validate:"notblank"`
	From         string `json:"from"         validate:"notblank"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r educationRequest) toInput() (ports.EducationInput, error) {
	from, to, err := parseRange(r.From, r.To)
	if err != nil {
		return ports.EducationInput{}, err
	}
	return ports.EducationInput{
		School:       r.School,
		Degree:       r.Degree,
		FieldOfStudy: r.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      r.Current,
		Description:  r.Description,
	}, nil
}

// --- Posts ---

type textRequest struct {
	Text string `json:"text" validate:"notblank"`
}

// --- Dates ---

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError(field, field+" must be a date (YYYY-MM-DD)")
}

// parseRange parses the mandatory from date and the optional to date.
func parseRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	from, err := parseDate("from", fromRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	if strings.TrimSpace(toRaw) == "" {
		return from, nil, nil
	}
	to, err := parseDate("to", toRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	if to.Before(from) {
		return time.Time{}, nil, domain.NewValidationError("to", "to must not be before from")
	}
	return from, &to, nil
}
