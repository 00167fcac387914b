package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	jwtpkg "github.com/camride/camride/internal/pkg/jwt"
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/internal/utils"
)

// JWTAuthMiddleware authenticates requests carrying a bearer token in the
// Authorization header or the session cookie, and attaches the resolved
// (user_id, role) pair to the request context.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := extractToken(c, config.CookieName)
			if tokenString == "" {
				return utils.UnauthorizedResponse(c, "Authentication required")
			}

			claims, err := jwtpkg.ValidateToken(tokenString, config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid or expired token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token: malformed user id")
			}

			role := models.Role(claims.Role)
			if !role.Valid() {
				return utils.UnauthorizedResponse(c, "Invalid token: unknown role")
			}

			c.Set("user_id", userID)
			c.Set("user_role", role)

			return next(c)
		}
	}
}

// RequireRole restricts a route to callers holding the given role.
func RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			callerRole, ok := c.Get("user_role").(models.Role)
			if !ok {
				return utils.UnauthorizedResponse(c, "Authentication required")
			}
			if callerRole != role {
				return utils.ForbiddenResponse(c, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// CallerIdentity returns the authenticated caller attached by
// JWTAuthMiddleware.
func CallerIdentity(c echo.Context) (uuid.UUID, models.Role, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := c.Get("user_role").(models.Role)
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, role, true
}

func extractToken(c echo.Context, cookieName string) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil {
			return cookie.Value
		}
	}

	return ""
}
