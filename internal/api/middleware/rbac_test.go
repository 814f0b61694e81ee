package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

func runRBAC(t *testing.T, rolesInContext []domain.Role, required ...domain.Role) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if rolesInContext != nil {
		c.Set(ctxKeyRoles, rolesInContext)
	}

	handler := RequireRoles(required...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func TestRequireRoles_UserOnAdminRoute(t *testing.T) {
	code := runRBAC(t, []domain.Role{domain.RoleUser}, domain.RoleAdmin)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireRoles_UserOnUserRoute(t *testing.T) {
	code := runRBAC(t, []domain.Role{domain.RoleUser}, domain.RoleUser, domain.RoleAdmin)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireRoles_AdminEverywhere(t *testing.T) {
	if code := runRBAC(t, []domain.Role{domain.RoleAdmin}, domain.RoleAdmin); code != http.StatusOK {
		t.Fatalf("admin route: expected 200, got %d", code)
	}
	if code := runRBAC(t, []domain.Role{domain.RoleAdmin}, domain.RoleUser, domain.RoleAdmin); code != http.StatusOK {
		t.Fatalf("user route: expected 200, got %d", code)
	}
}

func TestRequireRoles_MultiRoleIntersection(t *testing.T) {
	code := runRBAC(t, []domain.Role{domain.RoleUser, domain.RoleAdmin}, domain.RoleAdmin)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireRoles_NoClaims(t *testing.T) {
	// Auth middleware never ran: unauthenticated, not forbidden.
	code := runRBAC(t, nil, domain.RoleUser, domain.RoleAdmin)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
