package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devconnector/social-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newPostFixture() (*PostService, *stubPostRepo, *stubUserRepo) {
	posts := newStubPostRepo()
	users := newStubUserRepo()
	users.seed("alice", "Alice", "a@x.com")
	users.seed("bob", "Bob", "b@x.com")
	return NewPostService(posts, users, zerolog.Nop()), posts, users
}

func mustCreatePost(t *testing.T, svc *PostService, author, text string) *domain.Post {
	t.Helper()
	p, err := svc.Create(context.Background(), author, text)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestPostService_Create_SnapshotsAuthor(t *testing.T) {
	svc, _, users := newPostFixture()

	p := mustCreatePost(t, svc, "alice", "hello")

	if p.Name != "Alice" || p.Avatar != "avatar-alice" || p.UserID != "alice" {
		t.Fatalf("author snapshot missing: %+v", p)
	}
	if p.Likes == nil || len(p.Likes) != 0 || p.Comments == nil || len(p.Comments) != 0 {
		t.Fatalf("expected empty likes and comments, got %+v / %+v", p.Likes, p.Comments)
	}

	// Renaming the author later must not rewrite the snapshot.
	users.users["alice"].Name = "Alice Cooper"
	got, _ := svc.Get(context.Background(), p.ID)
	if got.Name != "Alice" {
		t.Fatalf("snapshot changed after author rename: %q", got.Name)
	}
}

func TestPostService_Create_UnknownAuthor(t *testing.T) {
	svc, _, _ := newPostFixture()

	if _, err := svc.Create(context.Background(), "ghost", "hi"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestPostService_Delete(t *testing.T) {
	svc, repo, _ := newPostFixture()
	p := mustCreatePost(t, svc, "alice", "hello")
	ctx := context.Background()

	if err := svc.Delete(ctx, "bob", p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, "alice", "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "alice", p.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("post not removed")
	}
}

// ---------------------------------------------------------------------------
// Likes
// ---------------------------------------------------------------------------

func TestPostService_Like_Idempotent(t *testing.T) {
	svc, repo, _ := newPostFixture()
	p := mustCreatePost(t, svc, "alice", "hello")
	ctx := context.Background()

	if _, err := svc.Like(ctx, "bob", p.ID); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if _, err := svc.Like(ctx, "bob", p.ID); !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}
	if n := len(repo.byID[p.ID].Likes); n != 1 {
		t.Fatalf("expected exactly one like, got %d", n)
	}
}

func TestPostService_Like_PrependsNewest(t *testing.T) {
	svc, _, _ := newPostFixture()
	p := mustCreatePost(t, svc, "alice", "hello")
	ctx := context.Background()

	_, _ = svc.Like(ctx, "alice", p.ID)
	got, err := svc.Like(ctx, "bob", p.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if got.Likes[0].UserID != "bob" || got.Likes[1].UserID != "alice" {
		t.Fatalf("expected newest like first, got %+v", got.Likes)
	}
}

func TestPostService_Like_UnknownPost(t *testing.T) {
	svc, _, _ := newPostFixture()

	if _, err := svc.Like(context.Background(), "bob", "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if _, err := svc.Unlike(context.Background(), "bob", "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Unlike_BeforeLike(t *testing.T) {
	svc, _, _ := newPostFixture()
	p := mustCreatePost(t, svc, "alice", "hello")

	if _, err := svc.Unlike(context.Background(), "bob", p.ID); !errors.Is(err, domain.ErrNotLiked) {
		t.Fatalf("expected ErrNotLiked, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

func TestPostService_Comment_UnknownPost(t *testing.T) {
	svc, _, _ := newPostFixture()

	if _, err := svc.AddComment(context.Background(), "bob", "missing", "hi"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if _, err := svc.DeleteComment(context.Background(), "bob", "missing", "c"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_DeleteComment_OnlyAuthorAndOnlyThatComment(t *testing.T) {
	svc, _, _ := newPostFixture()
	p := mustCreatePost(t, svc, "alice", "hello")
	ctx := context.Background()

	_, _ = svc.AddComment(ctx, "bob", p.ID, "first")
	_, _ = svc.AddComment(ctx, "alice", p.ID, "second")
	withThree, err := svc.AddComment(ctx, "bob", p.ID, "third")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	// newest first: third, second, first
	target := withThree.Comments[1]
	if target.Text != "second" || target.Name != "Alice" {
		t.Fatalf("unexpected comment order/snapshot: %+v", withThree.Comments)
	}

	if _, err := svc.DeleteComment(ctx, "bob", p.ID, target.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.DeleteComment(ctx, "alice", p.ID, "no-such-comment"); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}

	after, err := svc.DeleteComment(ctx, "alice", p.ID, target.ID)
	if err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if len(after.Comments) != 2 || after.Comments[0].Text != "third" || after.Comments[1].Text != "first" {
		t.Fatalf("expected [third first], got %+v", after.Comments)
	}
}

// ---------------------------------------------------------------------------
// End-to-end scenario across registration, login, posting and comments.
// ---------------------------------------------------------------------------

func TestScenario_AliceAndBob(t *testing.T) {
	ctx := context.Background()
	users := newStubUserRepo()
	posts := newStubPostRepo()
	tokens := NewTokenService("secret", 0)
	auth := NewAuthService(users, tokens, zerolog.Nop())
	svc := NewPostService(posts, users, zerolog.Nop())

	tokenA, err := auth.Register(ctx, "Alice", "a@x.com", "secret1")
	if err != nil || tokenA == "" {
		t.Fatalf("register A: %q, %v", tokenA, err)
	}
	alice, _ := tokens.Verify(tokenA)

	if _, err := auth.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	post, err := svc.Create(ctx, alice, "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(post.Likes) != 0 || len(post.Comments) != 0 {
		t.Fatalf("new post must have no likes or comments: %+v", post)
	}

	post, err = svc.Like(ctx, alice, post.ID)
	if err != nil || len(post.Likes) != 1 || post.Likes[0].UserID != alice {
		t.Fatalf("like: %+v, %v", post, err)
	}

	post, err = svc.Unlike(ctx, alice, post.ID)
	if err != nil || len(post.Likes) != 0 {
		t.Fatalf("unlike: %+v, %v", post, err)
	}

	post, err = svc.AddComment(ctx, alice, post.ID, "nice")
	if err != nil || len(post.Comments) != 1 {
		t.Fatalf("comment: %+v, %v", post, err)
	}
	if c := post.Comments[0]; c.Text != "nice" || c.UserID != alice {
		t.Fatalf("unexpected comment: %+v", c)
	}

	tokenB, err := auth.Register(ctx, "Bob", "b@x.com", "secret2")
	if err != nil {
		t.Fatalf("register B: %v", err)
	}
	bob, _ := tokens.Verify(tokenB)

	if _, err := svc.DeleteComment(ctx, bob, post.ID, post.Comments[0].ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
