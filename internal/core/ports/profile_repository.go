package ports

import (
	"context"

	"github.com/devconnector/social-api/internal/core/domain"
)

// ProfileRepository persists profiles. Every mutation is a single atomic
// document operation keyed by the owning user.
type ProfileRepository interface {
	// Upsert applies fields to the user's profile, creating it if absent.
	Upsert(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.Profile, error)
	FindByUser(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	DeleteByUser(ctx context.Context, userID string) error

	// PushExperience prepends exp. The repository assigns exp's ID.
	PushExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error)
	// PullExperience removes the entry with expID; unknown ids are a no-op.
	PullExperience(ctx context.Context, userID, expID string) (*domain.Profile, error)
	PushEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error)
	PullEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error)
}
