package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/spec-kit/roster-service/internal/config"
	"github.com/spec-kit/roster-service/internal/domain"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

type fakeAvatarRepo struct {
	objects map[string]struct {
		contentType string
		data        []byte
	}
}

func newFakeAvatarRepo() *fakeAvatarRepo {
	return &fakeAvatarRepo{objects: map[string]struct {
		contentType string
		data        []byte
	}{}}
}

func (r *fakeAvatarRepo) Put(_ context.Context, key, contentType string, data []byte) error {
	r.objects[key] = struct {
		contentType string
		data        []byte
	}{contentType, data}
	return nil
}

func (r *fakeAvatarRepo) Get(_ context.Context, key string) (string, []byte, error) {
	obj, ok := r.objects[key]
	if !ok {
		return "", nil, errNoAvatar
	}
	return obj.contentType, obj.data, nil
}

var errNoAvatar = apperrors.NewNotFound("avatar", nil)

func newProfileFixture() (*ProfileService, *fakeProfileRepo, *fakeAvatarRepo, *fakeIdentityProvider) {
	profileRepo := newFakeProfileRepo()
	avatarRepo := newFakeAvatarRepo()
	identityProvider := newFakeIdentityProvider()
	svc := NewProfileService(ProfileDependencies{
		ProfileRepo: profileRepo,
		AvatarRepo:  avatarRepo,
		Identity:    identityProvider,
		Avatar:      config.AvatarConfig{MaxBytes: 1024},
	})
	return svc, profileRepo, avatarRepo, identityProvider
}

func TestChangeAvatar_StoresUnderUserKey(t *testing.T) {
	svc, profiles, avatars, _ := newProfileFixture()
	profiles.add(&domain.Profile{ID: "user-1", FullName: "Ana", Role: domain.RoleEmployee, IsActive: true})

	path, err := svc.ChangeAvatar(context.Background(), "user-1", "image/png", bytes.Repeat([]byte{0x1}, 64))
	if err != nil {
		t.Fatalf("change avatar: %v", err)
	}
	if path != "user-1/avatar" {
		t.Fatalf("unexpected path %q", path)
	}
	if _, ok := avatars.objects["user-1/avatar"]; !ok {
		t.Fatal("expected stored object")
	}

	stored, _ := profiles.GetByID(context.Background(), "user-1")
	if stored.AvatarPath == nil || *stored.AvatarPath != path {
		t.Fatalf("expected avatar path on profile, got %v", stored.AvatarPath)
	}
}

func TestChangeAvatar_RejectsNonImage(t *testing.T) {
	svc, profiles, _, _ := newProfileFixture()
	profiles.add(&domain.Profile{ID: "user-1", FullName: "Ana", Role: domain.RoleEmployee, IsActive: true})

	_, err := svc.ChangeAvatar(context.Background(), "user-1", "application/pdf", []byte("%PDF"))
	if apperrors.Code(err) != apperrors.CodeBadFile {
		t.Fatalf("expected bad_file, got %v", err)
	}
}

func TestChangeAvatar_RejectsOversized(t *testing.T) {
	svc, profiles, _, _ := newProfileFixture()
	profiles.add(&domain.Profile{ID: "user-1", FullName: "Ana", Role: domain.RoleEmployee, IsActive: true})

	_, err := svc.ChangeAvatar(context.Background(), "user-1", "image/png", bytes.Repeat([]byte{0x1}, 2048))
	if apperrors.Code(err) != apperrors.CodeFileTooLarge {
		t.Fatalf("expected file_too_large, got %v", err)
	}
}

func TestChangeEmail_VerifiesPassword(t *testing.T) {
	svc, _, _, identities := newProfileFixture()
	identities.addAccount("user-1", "ana@example.com", "password123")

	err := svc.ChangeEmail(context.Background(), "user-1", "wrong", "new@example.com")
	if apperrors.Code(err) != apperrors.CodeBadPassword {
		t.Fatalf("expected bad_password, got %v", err)
	}

	if err := svc.ChangeEmail(context.Background(), "user-1", "password123", "new@example.com"); err != nil {
		t.Fatalf("change email: %v", err)
	}
	account, _ := identities.GetAccount(context.Background(), "user-1")
	if account.Email != "new@example.com" {
		t.Fatalf("unexpected email %q", account.Email)
	}
}

func TestChangeEmail_RejectsInvalid(t *testing.T) {
	svc, _, _, identities := newProfileFixture()
	identities.addAccount("user-1", "ana@example.com", "password123")

	err := svc.ChangeEmail(context.Background(), "user-1", "password123", "not-an-email")
	if apperrors.Code(err) != apperrors.CodeInvalidEmail {
		t.Fatalf("expected invalid_email, got %v", err)
	}
}
