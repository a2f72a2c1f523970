package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnector/social-api/internal/core/domain"
	"github.com/devconnector/social-api/internal/core/ports"
)

type profileFixture struct {
	users    *stubUserRepo
	profiles *stubProfileRepo
	posts    *stubPostRepo
	svc      *ProfileService
}

func newProfileFixture() *profileFixture {
	f := &profileFixture{
		users:    newStubUserRepo(),
		profiles: newStubProfileRepo(),
		posts:    newStubPostRepo(),
	}
	f.svc = NewProfileService(f.profiles, f.users, f.posts, zerolog.Nop())
	return f
}

// ---------------------------------------------------------------------------
// BuildProfileFields
// ---------------------------------------------------------------------------

func TestBuildProfileFields_OnlyProvidedKeys(t *testing.T) {
	f := BuildProfileFields(ports.ProfileInput{
		Company: "Acme",
		Status:  "Developer",
		Bio:     "   ",
	})

	if f.Company == nil || *f.Company != "Acme" {
		t.Fatalf("company not set: %+v", f.Company)
	}
	if f.Status == nil || *f.Status != "Developer" {
		t.Fatalf("status not set: %+v", f.Status)
	}
	if f.Bio != nil || f.Website != nil || f.Location != nil || f.GithubUsername != nil {
		t.Fatalf("absent keys must stay nil: %+v", f)
	}
	if f.Skills != nil {
		t.Fatalf("skills must be nil when not provided, got %v", f.Skills)
	}
}

func TestBuildProfileFields_SplitsSkills(t *testing.T) {
	f := BuildProfileFields(ports.ProfileInput{Skills: " Go,  HTML ,CSS,, Python "})

	want := []string{"Go", "HTML", "CSS", "Python"}
	if !reflect.DeepEqual(f.Skills, want) {
		t.Fatalf("expected %v, got %v", want, f.Skills)
	}
}

func TestBuildProfileFields_Social(t *testing.T) {
	none := BuildProfileFields(ports.ProfileInput{Social: map[string]string{"twitter": ""}})
	if none.Social != nil {
		t.Fatalf("empty social set must be omitted, got %v", none.Social)
	}

	some := BuildProfileFields(ports.ProfileInput{Social: map[string]string{
		"twitter":  "https://twitter.com/alice",
		"myspace":  "https://myspace.com/alice",
		"facebook": "",
	}})
	want := map[string]string{"twitter": "https://twitter.com/alice"}
	if !reflect.DeepEqual(some.Social, want) {
		t.Fatalf("expected %v, got %v", want, some.Social)
	}
}

// ---------------------------------------------------------------------------
// Upsert
// ---------------------------------------------------------------------------

func TestProfileService_Upsert_CreatesThenMerges(t *testing.T) {
	fx := newProfileFixture()
	fx.users.seed("u1", "Alice", "a@x.com")
	ctx := context.Background()

	first, err := fx.svc.Upsert(ctx, "u1", ports.ProfileInput{
		Company: "Acme",
		Status:  "Developer",
		Skills:  "Go, SQL",
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.User == nil || first.User.Name != "Alice" {
		t.Fatalf("expected populated owner, got %+v", first.User)
	}

	second, err := fx.svc.Upsert(ctx, "u1", ports.ProfileInput{
		Location: "Berlin",
		Social:   map[string]string{"linkedin": "https://linkedin.com/in/alice"},
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("second upsert must update the same profile: %s vs %s", second.ID, first.ID)
	}
	if second.Company != "Acme" || second.Status != "Developer" {
		t.Fatalf("fields from the first call were lost: %+v", second)
	}
	if !reflect.DeepEqual(second.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("skills lost: %v", second.Skills)
	}
	if second.Location != "Berlin" || second.Social["linkedin"] == "" {
		t.Fatalf("fields from the second call missing: %+v", second)
	}
	if len(fx.profiles.byUser) != 1 {
		t.Fatalf("expected a single stored profile, got %d", len(fx.profiles.byUser))
	}
}

func TestProfileService_ByUser_NotFound(t *testing.T) {
	fx := newProfileFixture()

	if _, err := fx.svc.ByUser(context.Background(), "ghost"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_List_PopulatesOwners(t *testing.T) {
	fx := newProfileFixture()
	fx.users.seed("u1", "Alice", "a@x.com")
	fx.users.seed("u2", "Bob", "b@x.com")
	ctx := context.Background()
	_, _ = fx.svc.Upsert(ctx, "u1", ports.ProfileInput{Status: "Dev"})
	_, _ = fx.svc.Upsert(ctx, "u2", ports.ProfileInput{Status: "Ops"})

	profiles, err := fx.svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	for _, p := range profiles {
		if p.User == nil || p.User.ID != p.UserID {
			t.Fatalf("profile %s not populated: %+v", p.ID, p.User)
		}
	}
}

// ---------------------------------------------------------------------------
// Experience / education
// ---------------------------------------------------------------------------

func TestProfileService_Experience_PrependAndRemove(t *testing.T) {
	fx := newProfileFixture()
	fx.users.seed("u1", "Alice", "a@x.com")
	ctx := context.Background()
	_, _ = fx.svc.Upsert(ctx, "u1", ports.ProfileInput{Status: "Dev"})

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := fx.svc.AddExperience(ctx, "u1", ports.ExperienceInput{Title: "Junior", Company: "A", From: from})
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	p, err := fx.svc.AddExperience(ctx, "u1", ports.ExperienceInput{Title: "Senior", Company: "B", From: from.AddDate(2, 0, 0)})
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}

	if len(p.Experience) != 2 || p.Experience[0].Title != "Senior" {
		t.Fatalf("expected most recent first, got %+v", p.Experience)
	}

	p, err = fx.svc.RemoveExperience(ctx, "u1", p.Experience[1].ID)
	if err != nil {
		t.Fatalf("remove experience: %v", err)
	}
	if len(p.Experience) != 1 || p.Experience[0].Title != "Senior" {
		t.Fatalf("wrong entry removed: %+v", p.Experience)
	}

	p, err = fx.svc.RemoveExperience(ctx, "u1", "does-not-exist")
	if err != nil {
		t.Fatalf("removing an unknown id must be a no-op, got %v", err)
	}
	if len(p.Experience) != 1 {
		t.Fatalf("unknown id changed the profile: %+v", p.Experience)
	}
}

func TestProfileService_Education_RequiresProfile(t *testing.T) {
	fx := newProfileFixture()
	fx.users.seed("u1", "Alice", "a@x.com")

	_, err := fx.svc.AddEducation(context.Background(), "u1", ports.EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: time.Now(),
	})
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	if _, err := fx.svc.RemoveEducation(context.Background(), "u1", "x"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_Education_AddAndRemove(t *testing.T) {
	fx := newProfileFixture()
	fx.users.seed("u1", "Alice", "a@x.com")
	ctx := context.Background()
	_, _ = fx.svc.Upsert(ctx, "u1", ports.ProfileInput{Status: "Dev"})

	p, err := fx.svc.AddEducation(ctx, "u1", ports.EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: time.Now(), Current: true,
	})
	if err != nil {
		t.Fatalf("add education: %v", err)
	}
	if len(p.Education) != 1 || !p.Education[0].Current {
		t.Fatalf("unexpected education: %+v", p.Education)
	}

	p, err = fx.svc.RemoveEducation(ctx, "u1", p.Education[0].ID)
	if err != nil || len(p.Education) != 0 {
		t.Fatalf("remove education: %+v, %v", p.Education, err)
	}
}

// ---------------------------------------------------------------------------
// DeleteAccount
// ---------------------------------------------------------------------------

func TestProfileService_DeleteAccount(t *testing.T) {
	fx := newProfileFixture()
	fx.users.seed("u1", "Alice", "a@x.com")
	fx.users.seed("u2", "Bob", "b@x.com")
	ctx := context.Background()
	_, _ = fx.svc.Upsert(ctx, "u1", ports.ProfileInput{Status: "Dev"})
	posts := NewPostService(fx.posts, fx.users, zerolog.Nop())
	_, _ = posts.Create(ctx, "u1", "mine")
	bobs, _ := posts.Create(ctx, "u2", "bob's")

	if err := fx.svc.DeleteAccount(ctx, "u1"); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, ok := fx.users.users["u1"]; ok {
		t.Fatalf("user not deleted")
	}
	if _, ok := fx.profiles.byUser["u1"]; ok {
		t.Fatalf("profile not deleted")
	}
	if len(fx.posts.byID) != 1 || fx.posts.byID[bobs.ID] == nil {
		t.Fatalf("only the caller's posts may be removed, left: %v", fx.posts.byID)
	}

	if err := fx.svc.DeleteAccount(ctx, "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
