package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lokesh-katari/auth-service/internal/api/metrics"
	"github.com/lokesh-katari/auth-service/internal/core/domain"
	"github.com/lokesh-katari/auth-service/internal/pkg/token"
)

// Context keys for the authenticated identity. Scoped to the single request:
// the Auth middleware writes them, handlers and the RBAC gate read them.
const (
	ctxKeyUsername = "auth.username"
	ctxKeyRoles    = "auth.roles"
)

// Auth extracts the bearer token, verifies it with the codec and injects the
// subject and role set into the request context. Anything other than a
// well-formed `Bearer <token>` header carrying a valid token is a 401.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1], time.Now().UTC())
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ctxKeyUsername, claims.Subject)
			c.Set(ctxKeyRoles, claims.Roles)

			return next(c)
		}
	}
}

// UsernameFromContext returns the verified subject, or "" when the Auth
// middleware has not run on this request.
func UsernameFromContext(c echo.Context) string {
	username, _ := c.Get(ctxKeyUsername).(string)
	return username
}

// RolesFromContext returns the verified role set, or nil when the Auth
// middleware has not run on this request.
func RolesFromContext(c echo.Context) []domain.Role {
	roles, _ := c.Get(ctxKeyRoles).([]domain.Role)
	return roles
}
