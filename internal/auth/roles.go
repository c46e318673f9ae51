package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/domain"
	apperrors "github.com/spec-kit/roster-service/pkg/util/errorutil"
)

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Profile == nil {
			return apperrors.NewUnauthorized(apperrors.CodeUnauthorized, "authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Profile.Role]; !exists {
			return apperrors.NewForbidden(apperrors.CodeForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireRosterManager ensures the caller may manage employees at all.
func RequireRosterManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Profile == nil {
			return apperrors.NewUnauthorized(apperrors.CodeUnauthorized, "authentication required")
		}
		if !principal.Profile.Role.CanManageRoster() {
			return apperrors.NewForbidden(apperrors.CodeForbidden, "roster management role required")
		}
		return c.Next()
	}
}
