package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/devconnector/social-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. Guarded operations mirror the filters used by
// the Mongo implementation and return domain.ErrGuardFailed on no match.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) seed(id, name, email string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &domain.User{ID: id, Name: name, Email: email, Avatar: "avatar-" + id, Date: time.Now().UTC()}
	r.users[id] = u
	return cloneUser(u)
}

// --- profiles ---

type stubProfileRepo struct {
	mu      sync.Mutex
	byUser  map[string]*domain.Profile
	nextID  int
	upserts []domain.ProfileFields
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUser: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	clone := *p
	clone.Skills = append([]string(nil), p.Skills...)
	clone.Experience = append([]domain.Experience(nil), p.Experience...)
	clone.Education = append([]domain.Education(nil), p.Education...)
	if p.Social != nil {
		clone.Social = make(map[string]string, len(p.Social))
		for k, v := range p.Social {
			clone.Social[k] = v
		}
	}
	return &clone
}

func (r *stubProfileRepo) id(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *stubProfileRepo) Upsert(_ context.Context, userID string, f domain.ProfileFields) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts = append(r.upserts, f)

	p, ok := r.byUser[userID]
	if !ok {
		p = &domain.Profile{
			ID:         r.id("profile"),
			UserID:     userID,
			Experience: []domain.Experience{},
			Education:  []domain.Education{},
			Date:       time.Now().UTC(),
		}
		r.byUser[userID] = p
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Company, f.Company)
	set(&p.Website, f.Website)
	set(&p.Location, f.Location)
	set(&p.Bio, f.Bio)
	set(&p.Status, f.Status)
	set(&p.GithubUsername, f.GithubUsername)
	if f.Skills != nil {
		p.Skills = append([]string(nil), f.Skills...)
	}
	if f.Social != nil {
		p.Social = f.Social
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) FindByUser(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) List(_ context.Context) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Profile, 0, len(r.byUser))
	for _, p := range r.byUser {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProfileRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
	return nil
}

func (r *stubProfileRepo) mutate(userID string, fn func(p *domain.Profile)) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	fn(p)
	return cloneProfile(p), nil
}

func (r *stubProfileRepo) PushExperience(_ context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	return r.mutate(userID, func(p *domain.Profile) {
		exp.ID = r.id("exp")
		p.Experience = append([]domain.Experience{exp}, p.Experience...)
	})
}

func (r *stubProfileRepo) PullExperience(_ context.Context, userID, expID string) (*domain.Profile, error) {
	return r.mutate(userID, func(p *domain.Profile) {
		kept := p.Experience[:0]
		for _, e := range p.Experience {
			if e.ID != expID {
				kept = append(kept, e)
			}
		}
		p.Experience = kept
	})
}

func (r *stubProfileRepo) PushEducation(_ context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	return r.mutate(userID, func(p *domain.Profile) {
		edu.ID = r.id("edu")
		p.Education = append([]domain.Education{edu}, p.Education...)
	})
}

func (r *stubProfileRepo) PullEducation(_ context.Context, userID, eduID string) (*domain.Profile, error) {
	return r.mutate(userID, func(p *domain.Profile) {
		kept := p.Education[:0]
		for _, e := range p.Education {
			if e.ID != eduID {
				kept = append(kept, e)
			}
		}
		p.Education = kept
	})
}

// --- posts ---

type stubPostRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Post
	nextID int
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{byID: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Likes = append([]domain.Like{}, p.Likes...)
	clone.Comments = append([]domain.Comment{}, p.Comments...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := clonePost(post)
	stored.ID = fmt.Sprintf("post-%d", r.nextID)
	r.byID[stored.ID] = stored
	return clonePost(stored), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubPostRepo) DeleteOwned(_ context.Context, postID, authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[postID]
	if !ok || p.UserID != authorID {
		return domain.ErrGuardFailed
	}
	delete(r.byID, postID)
	return nil
}

func (r *stubPostRepo) DeleteByAuthor(_ context.Context, authorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, p := range r.byID {
		if p.UserID == authorID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func (r *stubPostRepo) AddLike(_ context.Context, postID, userID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[postID]
	if !ok || p.LikedBy(userID) {
		return nil, domain.ErrGuardFailed
	}
	p.Likes = append([]domain.Like{{UserID: userID}}, p.Likes...)
	return clonePost(p), nil
}

func (r *stubPostRepo) RemoveLike(_ context.Context, postID, userID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[postID]
	if !ok || !p.LikedBy(userID) {
		return nil, domain.ErrGuardFailed
	}
	kept := make([]domain.Like, 0, len(p.Likes))
	for _, l := range p.Likes {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	p.Likes = kept
	return clonePost(p), nil
}

func (r *stubPostRepo) PushComment(_ context.Context, postID string, c domain.Comment) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	r.nextID++
	c.ID = fmt.Sprintf("comment-%d", r.nextID)
	p.Comments = append([]domain.Comment{c}, p.Comments...)
	return clonePost(p), nil
}

func (r *stubPostRepo) PullOwnedComment(_ context.Context, postID, commentID, authorID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[postID]
	if !ok {
		return nil, domain.ErrGuardFailed
	}
	c := p.Comment(commentID)
	if c == nil || c.UserID != authorID {
		return nil, domain.ErrGuardFailed
	}
	kept := make([]domain.Comment, 0, len(p.Comments))
	for _, existing := range p.Comments {
		if existing.ID != commentID {
			kept = append(kept, existing)
		}
	}
	p.Comments = kept
	return clonePost(p), nil
}
