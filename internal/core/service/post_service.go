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

// PostService enforces authorship rules on posts and comments. Mutations are
// delegated to guarded repository operations; when a guard fails the post is
// re-read to report the precise reason.
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, logger zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, logger: logger}
}

// Create stores a post with the author's current name and avatar.
func (s *PostService) Create(ctx context.Context, authorID, text string) (*domain.Post, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		UserID:   author.ID,
		Text:     strings.TrimSpace(text),
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", authorID).Msg("failed to create post")
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", authorID).Msg("post created")
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, postID)
}

// Delete removes the post if callerID authored it.
func (s *PostService) Delete(ctx context.Context, callerID, postID string) error {
	err := s.posts.DeleteOwned(ctx, postID, callerID)
	if errors.Is(err, domain.ErrGuardFailed) {
		return s.explain(ctx, postID, func(p *domain.Post) error {
			if !p.OwnedBy(callerID) {
				return domain.ErrForbidden
			}
			return nil
		})
	}
	return err
}

// Like adds callerID to the post's likes. A second like by the same user
// reports domain.ErrAlreadyLiked and leaves the post unchanged.
func (s *PostService) Like(ctx context.Context, callerID, postID string) (*domain.Post, error) {
	post, err := s.posts.AddLike(ctx, postID, callerID)
	if errors.Is(err, domain.ErrGuardFailed) {
		return nil, s.explain(ctx, postID, func(p *domain.Post) error {
			if p.LikedBy(callerID) {
				return domain.ErrAlreadyLiked
			}
			return nil
		})
	}
	return post, err
}

// Unlike removes callerID's like, failing with domain.ErrNotLiked if absent.
func (s *PostService) Unlike(ctx context.Context, callerID, postID string) (*domain.Post, error) {
	post, err := s.posts.RemoveLike(ctx, postID, callerID)
	if errors.Is(err, domain.ErrGuardFailed) {
		return nil, s.explain(ctx, postID, func(p *domain.Post) error {
			if !p.LikedBy(callerID) {
				return domain.ErrNotLiked
			}
			return nil
		})
	}
	return post, err
}

// AddComment prepends a comment carrying the commenter's name and avatar.
func (s *PostService) AddComment(ctx context.Context, callerID, postID, text string) (*domain.Post, error) {
	author, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return s.posts.PushComment(ctx, postID, domain.Comment{
		UserID: author.ID,
		Text:   strings.TrimSpace(text),
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   time.Now().UTC(),
	})
}

// DeleteComment removes a single comment written by callerID.
func (s *PostService) DeleteComment(ctx context.Context, callerID, postID, commentID string) (*domain.Post, error) {
	post, err := s.posts.PullOwnedComment(ctx, postID, commentID, callerID)
	if errors.Is(err, domain.ErrGuardFailed) {
		return nil, s.explain(ctx, postID, func(p *domain.Post) error {
			c := p.Comment(commentID)
			if c == nil {
				return domain.ErrCommentNotFound
			}
			if c.UserID != callerID {
				return domain.ErrForbidden
			}
			return nil
		})
	}
	return post, err
}

// explain re-reads a post after a failed guard and returns the domain error
// reported by check. If check finds nothing wrong the post changed between
// the write and the read, which is reported as a conflict on the guard.
func (s *PostService) explain(ctx context.Context, postID string, check func(*domain.Post) error) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := check(post); err != nil {
		return err
	}
	return fmt.Errorf("post %s: %w", postID, domain.ErrGuardFailed)
}
