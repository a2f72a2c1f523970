package ports

import (
	"context"

	"github.com/devconnector/social-api/internal/core/domain"
)

// UserRepository defines persistence for registered users.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID.
	// Returns domain.ErrUserExists when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids, keyed by ID.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
