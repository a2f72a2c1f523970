package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnector/social-api/internal/core/domain"
	"github.com/devconnector/social-api/internal/core/ports"
)

// ProfileService builds and mutates user profiles.
type ProfileService struct {
	profiles ports.ProfileRepository
	users    ports.UserRepository
	posts    ports.PostRepository
	log      zerolog.Logger
}

func NewProfileService(
	profiles ports.ProfileRepository,
	users ports.UserRepository,
	posts ports.PostRepository,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, posts: posts, log: log}
}

// Upsert merges the provided fields into the user's profile, creating the
// profile on first use. Fields missing from in are left as stored.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in ports.ProfileInput) (*domain.Profile, error) {
	profile, err := s.profiles.Upsert(ctx, userID, BuildProfileFields(in))
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return s.populate(ctx, profile)
}

// BuildProfileFields converts the raw form into a partial update. Empty
// values are treated as absent; skills are split on commas; the social map
// is only set when at least one link was provided.
func BuildProfileFields(in ports.ProfileInput) domain.ProfileFields {
	var f domain.ProfileFields
	f.Company = optional(in.Company)
	f.Website = optional(in.Website)
	f.Location = optional(in.Location)
	f.Bio = optional(in.Bio)
	f.Status = optional(in.Status)
	f.GithubUsername = optional(in.GithubUsername)

	if strings.TrimSpace(in.Skills) != "" {
		f.Skills = splitSkills(in.Skills)
	}

	social := make(map[string]string)
	for _, platform := range domain.SocialPlatforms {
		if link := strings.TrimSpace(in.Social[platform]); link != "" {
			social[platform] = link
		}
	}
	if len(social) > 0 {
		f.Social = social
	}
	return f
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func (s *ProfileService) Me(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.ByUser(ctx, userID)
}

// ByUser returns the populated profile owned by userID.
func (s *ProfileService) ByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, profile)
}

// List returns every profile with its owner's name and avatar attached.
func (s *ProfileService) List(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list profiles: load users: %w", err)
	}

	for _, p := range profiles {
		if u, ok := users[p.UserID]; ok {
			summary := u.Summary()
			p.User = &summary
		}
	}
	return profiles, nil
}

// DeleteAccount removes the user's posts, profile and account, in that order.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	removed, err := s.posts.DeleteByAuthor(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete account: posts: %w", err)
	}
	if err := s.profiles.DeleteByUser(ctx, userID); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("delete account: profile: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete account: user: %w", err)
	}

	s.log.Info().Str("user_id", userID).Int64("posts_removed", removed).Msg("account deleted")
	return nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ports.ExperienceInput) (*domain.Profile, error) {
	profile, err := s.profiles.PushExperience(ctx, userID, domain.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From.UTC(),
		To:          utcPtr(in.To),
		Current:     in.Current,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, profile)
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	profile, err := s.profiles.PullExperience(ctx, userID, expID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, profile)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, in ports.EducationInput) (*domain.Profile, error) {
	profile, err := s.profiles.PushEducation(ctx, userID, domain.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From.UTC(),
		To:           utcPtr(in.To),
		Current:      in.Current,
		Description:  in.Description,
	})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, profile)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	profile, err := s.profiles.PullEducation(ctx, userID, eduID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, profile)
}

// populate attaches the owner's public fields. A missing owner is not an
// error: the profile is returned as stored.
func (s *ProfileService) populate(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	u, err := s.users.FindByID(ctx, p.UserID)
	switch {
	case err == nil:
		summary := u.Summary()
		p.User = &summary
	case errors.Is(err, domain.ErrUserNotFound):
		s.log.Warn().Str("user_id", p.UserID).Msg("profile owner missing")
	default:
		return nil, fmt.Errorf("load profile owner: %w", err)
	}
	return p, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
