package ports

import (
	"context"

	"github.com/devconnector/social-api/internal/core/domain"
)

// PostRepository persists posts. Conditional operations return
// domain.ErrGuardFailed when their precondition does not hold, leaving the
// caller to classify the failure.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]*domain.Post, error)

	// DeleteOwned removes the post only if authorID wrote it.
	DeleteOwned(ctx context.Context, postID, authorID string) error
	DeleteByAuthor(ctx context.Context, authorID string) (int64, error)

	// AddLike prepends a like only if userID has not liked the post yet.
	AddLike(ctx context.Context, postID, userID string) (*domain.Post, error)
	// RemoveLike removes userID's like only if present.
	RemoveLike(ctx context.Context, postID, userID string) (*domain.Post, error)

	// PushComment prepends c. The repository assigns c's ID.
	PushComment(ctx context.Context, postID string, c domain.Comment) (*domain.Post, error)
	// PullOwnedComment removes the comment only if authorID wrote it.
	PullOwnedComment(ctx context.Context, postID, commentID, authorID string) (*domain.Post, error)
}
