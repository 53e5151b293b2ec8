package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/pickupkart/internal/config"
	"github.com/example/pickupkart/internal/models"
	"github.com/example/pickupkart/internal/services"
	"github.com/example/pickupkart/internal/utils"
)

const principalContextKey = "currentPrincipal"

// AuthMiddleware validates bearer tokens and loads the authenticated
// principal into context. The role claim inside the token is advisory:
// the principal's current role is re-read from the store on every request
// so a revoked role takes effect before the token expires.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	auth := services.NewAuthService(db)

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			switch {
			case errors.Is(err, utils.ErrTokenExpired):
				return fiber.NewError(fiber.StatusUnauthorized, "token expired")
			case errors.Is(err, utils.ErrTokenMalformed):
				return fiber.NewError(fiber.StatusUnauthorized, "token malformed")
			default:
				return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
			}
		}

		principal, err := auth.LoadPrincipal(claims.SubjectID())
		if err != nil {
			if errors.Is(err, services.ErrStoreUnavailable) {
				return fiber.NewError(fiber.StatusServiceUnavailable, services.ErrStoreUnavailable.Error())
			}
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(principalContextKey, principal)
		return c.Next()
	}
}

// RequireRole denies the request unless the principal holds exactly the
// required role. Absence of a principal or of a matching role fails closed.
func RequireRole(role models.RoleName) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentPrincipal(c)
		if !ok || principal.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// CurrentPrincipal extracts the authenticated principal from context.
func CurrentPrincipal(c *fiber.Ctx) (*services.Principal, bool) {
	value := c.Locals(principalContextKey)
	if value == nil {
		return nil, false
	}

	if principal, ok := value.(*services.Principal); ok {
		return principal, true
	}

	return nil, false
}
