package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/config"
	"github.com/spec-kit/roster-service/internal/identity"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// ProfileService covers the self-service surface: a signed-in member changing
// their own email or avatar. Password changes live on AuthService.
type ProfileService struct {
	profiles repository.ProfileRepository
	avatars  repository.AvatarRepository
	identity identity.Provider
	avatar   config.AvatarConfig
}

// ProfileDependencies bundles collaborators.
type ProfileDependencies struct {
	ProfileRepo repository.ProfileRepository
	AvatarRepo  repository.AvatarRepository
	Identity    identity.Provider
	Avatar      config.AvatarConfig
}

// NewProfileService creates the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	return &ProfileService{
		profiles: deps.ProfileRepo,
		avatars:  deps.AvatarRepo,
		identity: deps.Identity,
		avatar:   deps.Avatar,
	}
}

// ChangeEmail updates the caller's own email after re-verifying the password.
func (s *ProfileService) ChangeEmail(ctx context.Context, userID, password, newEmail string) error {
	if _, err := mail.ParseAddress(newEmail); err != nil {
		return apperrors.NewValidationError(apperrors.CodeInvalidEmail, "email address is not valid")
	}

	account, err := s.identity.GetAccount(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if _, err := s.identity.Authenticate(ctx, account.Email, password); err != nil {
		return apperrors.NewUnauthorized(apperrors.CodeBadPassword, "current password is incorrect")
	}

	email := newEmail
	if err := s.identity.UpdateAccount(ctx, userID, identity.UpdateParams{Email: &email}); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ChangeAvatar stores the caller's avatar under a fixed per-user key and
// records that key on the profile. Uploads must be images of at most the
// configured size.
func (s *ProfileService) ChangeAvatar(ctx context.Context, userID, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.NewValidationError(apperrors.CodeBadFile, "avatar file is empty")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.NewValidationError(apperrors.CodeBadFile, "avatar must be an image")
	}
	if int64(len(data)) > s.avatar.MaxBytes {
		return "", apperrors.NewValidationError(apperrors.CodeFileTooLarge, "avatar exceeds the size limit")
	}

	path := fmt.Sprintf("%s/avatar", userID)
	if err := s.avatars.Put(ctx, path, contentType, data); err != nil {
		return "", apperrors.MapError(err)
	}
	if err := s.profiles.SetAvatarPath(ctx, userID, path); err != nil {
		return "", apperrors.MapError(err)
	}
	return path, nil
}

// GetAvatar fetches the caller's stored avatar.
func (s *ProfileService) GetAvatar(ctx context.Context, userID string) (string, []byte, error) {
	contentType, data, err := s.avatars.Get(ctx, fmt.Sprintf("%s/avatar", userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.NewNotFound("avatar", map[string]any{"user_id": userID})
		}
		return "", nil, apperrors.MapError(err)
	}
	return contentType, data, nil
}
