package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devconnector/social-api/internal/api/middleware"
	"github.com/devconnector/social-api/internal/core/domain"
	"github.com/devconnector/social-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

// stubProfileService records the last input it received.
type stubProfileService struct {
	ports.ProfileService

	lastInput      ports.ProfileInput
	lastExperience ports.ExperienceInput
	lastEducation  ports.EducationInput
	err            error
}

func (s *stubProfileService) Upsert(_ context.Context, userID string, in ports.ProfileInput) (*domain.Profile, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Profile{ID: "p1", UserID: userID, Status: in.Status}, nil
}

func (s *stubProfileService) AddExperience(_ context.Context, userID string, in ports.ExperienceInput) (*domain.Profile, error) {
	s.lastExperience = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Profile{ID: "p1", UserID: userID, Experience: []domain.Experience{{ID: "e1", Title: in.Title}}}, nil
}

func (s *stubProfileService) AddEducation(_ context.Context, userID string, in ports.EducationInput) (*domain.Profile, error) {
	s.lastEducation = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Profile{ID: "p1", UserID: userID}, nil
}

func (s *stubProfileService) DeleteAccount(context.Context, string) error { return s.err }

type stubGithubService struct {
	repos []domain.Repo
	err   error
}

func (s *stubGithubService) Repos(context.Context, string) ([]domain.Repo, error) {
	return s.repos, s.err
}

type stubPostService struct {
	ports.PostService

	post *domain.Post
	err  error
}

func (s *stubPostService) Create(_ context.Context, authorID, text string) (*domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Post{ID: "post1", UserID: authorID, Text: text}, nil
}

func (s *stubPostService) Like(context.Context, string, string) (*domain.Post, error) {
	return s.post, s.err
}

func (s *stubPostService) DeleteComment(context.Context, string, string, string) (*domain.Post, error) {
	return s.post, s.err
}

// newContext builds an echo context for a JSON request, optionally as an
// authenticated caller.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.UserIDKey, userID)
	}
	return c, rec
}
