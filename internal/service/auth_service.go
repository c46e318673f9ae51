package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/domain"
	"github.com/spec-kit/roster-service/internal/identity"
	"github.com/spec-kit/roster-service/internal/repository"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// AuthService handles credential verification and token issuance.
type AuthService struct {
	identity identity.Provider
	profiles repository.ProfileRepository
	tokens   *auth.TokenManager
}

// AuthDependencies bundles collaborators.
type AuthDependencies struct {
	Identity    identity.Provider
	ProfileRepo repository.ProfileRepository
	Tokens      *auth.TokenManager
}

// NewAuthService creates the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		identity: deps.Identity,
		profiles: deps.ProfileRepo,
		tokens:   deps.Tokens,
	}
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token              string
	ExpiresAt          time.Time
	Profile            *domain.Profile
	MustChangePassword bool
}

// Login verifies credentials and issues an access token. A disabled profile
// fails with the same code as a banned account so the caller cannot tell the
// layers apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError(apperrors.CodeMissing, "email and password are required")
	}

	accountID, err := s.identity.Authenticate(ctx, email, password)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	profile, err := s.profiles.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized(apperrors.CodeBadCredentials, "invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !profile.IsActive || profile.DeletedAt != nil {
		return nil, apperrors.NewUnauthorized(apperrors.CodeDisabled, "account disabled")
	}

	token, expiresAt, err := s.tokens.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &LoginResult{
		Token:              token,
		ExpiresAt:          expiresAt,
		Profile:            profile,
		MustChangePassword: profile.MustChangePassword,
	}, nil
}

// ChangePassword rotates the caller's own password after re-verifying the
// current one, and clears the first-login flag.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError(apperrors.CodeWeakPassword, "password must be at least 8 characters")
	}

	account, err := s.identity.GetAccount(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if _, err := s.identity.Authenticate(ctx, account.Email, currentPassword); err != nil {
		return apperrors.NewUnauthorized(apperrors.CodeBadPassword, "current password is incorrect")
	}

	password := newPassword
	if err := s.identity.UpdateAccount(ctx, userID, identity.UpdateParams{Password: &password}); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.profiles.SetMustChangePassword(ctx, userID, false); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Tokens exposes the token manager for the transport layer's middleware.
func (s *AuthService) Tokens() *auth.TokenManager {
	return s.tokens
}
