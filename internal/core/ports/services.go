package ports

import (
	"context"
	"time"

	"github.com/devconnector/social-api/internal/core/domain"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier checks identity tokens and returns the embedded user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthService covers registration, login and the current-user lookup.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// ProfileInput is the raw profile form. Empty strings mean "not provided".
type ProfileInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	// Skills is a comma separated list.
	Skills string
	Social map[string]string
}

// ExperienceInput carries a new experience entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// EducationInput carries a new education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// ProfileService manages profiles and account removal.
type ProfileService interface {
	Upsert(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error)
	Me(ctx context.Context, userID string) (*domain.Profile, error)
	ByUser(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	DeleteAccount(ctx context.Context, userID string) error

	AddExperience(ctx context.Context, userID string, in ExperienceInput) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error)
	AddEducation(ctx context.Context, userID string, in EducationInput) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error)
}

// PostService manages posts, likes and comments with ownership checks.
type PostService interface {
	Create(ctx context.Context, authorID, text string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, postID string) (*domain.Post, error)
	Delete(ctx context.Context, callerID, postID string) error
	Like(ctx context.Context, callerID, postID string) (*domain.Post, error)
	Unlike(ctx context.Context, callerID, postID string) (*domain.Post, error)
	AddComment(ctx context.Context, callerID, postID, text string) (*domain.Post, error)
	DeleteComment(ctx context.Context, callerID, postID, commentID string) (*domain.Post, error)
}

// GithubService returns the latest repositories for a GitHub username.
type GithubService interface {
	Repos(ctx context.Context, username string) ([]domain.Repo, error)
}
