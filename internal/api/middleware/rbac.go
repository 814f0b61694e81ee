package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

// RequireRoles gates a route on role membership: the request proceeds iff the
// verified role set intersects requiredRoles. Must run after Auth — a request
// with no roles in context is one the authorizer never saw, and is rejected
// as unauthenticated rather than forbidden.
func RequireRoles(requiredRoles ...domain.Role) echo.MiddlewareFunc {
	required := make(map[domain.Role]struct{}, len(requiredRoles))
	for _, r := range requiredRoles {
		required[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles := RolesFromContext(c)
			if len(roles) == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			for _, r := range roles {
				if _, ok := required[r]; ok {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
		}
	}
}
