package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/lokesh-katari/auth-service/internal/api/policy"
	"github.com/lokesh-katari/auth-service/internal/pkg/token"
)

// PolicyGate enforces the route-policy table for paths that have no explicit
// route registration. Unknown paths fall through to the policy default
// (any authenticated role), so an unregistered path answers 401 without a
// valid token instead of leaking a bare 404.
func PolicyGate(codec *token.Codec) echo.MiddlewareFunc {
	authn := Auth(codec)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requirement := policy.RequirementFor(c.Request().URL.Path)
			roles := requirement.AllowedRoles()
			if roles == nil {
				return next(c)
			}
			return authn(RequireRoles(roles...)(next))(c)
		}
	}
}
