package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"quickchat/internal/domain"
	"quickchat/internal/repository"
)

func newUserService() *UserService {
	return NewUserService(zap.NewNop(), repository.NewMemoryUserRepository(repository.SeedUser()))
}

func TestUserServiceUpdateProfile_Partial(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	before, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, err := svc.UpdateProfile(ctx, domain.ProfileUpdate{Name: "X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.Name != "X" {
		t.Fatalf("expected name updated, got %q", after.Name)
	}
	if after.About != before.About || after.Phone != before.Phone || after.Avatar != before.Avatar {
		t.Fatalf("expected other fields untouched, got %+v", after)
	}
}

func TestUserServiceUpdateProfile_EmptyIsNoop(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	before, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := svc.UpdateProfile(ctx, domain.ProfileUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after != before {
		t.Fatalf("expected profile unchanged, got %+v", after)
	}
}

func TestUserServiceUpdateProfile_BlankFieldIgnored(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	before, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := svc.UpdateProfile(ctx, domain.ProfileUpdate{Name: "  ", About: "new about"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.Name != before.Name {
		t.Fatalf("expected blank name ignored, got %q", after.Name)
	}
	if after.About != "new about" {
		t.Fatalf("expected about updated, got %q", after.About)
	}
}
