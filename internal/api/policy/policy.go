// Package policy holds the static route-access table: which path prefixes
// are public, which need any authenticated role, and which are admin-only.
// The table is data rather than router wiring so the fail-secure default
// ("unknown paths require authentication") is checkable for any path, not
// just the registered ones.
package policy

import (
	"strings"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

// Requirement is the access tier a route demands.
type Requirement int

const (
	// Public routes need no token at all.
	Public Requirement = iota
	// AnyAuthenticated routes accept any valid token regardless of role.
	AnyAuthenticated
	// AdminOnly routes require the ADMIN role.
	AdminOnly
)

// Rule binds a path prefix to a requirement.
type Rule struct {
	Prefix      string
	Requirement Requirement
}

// Rules is evaluated in order, most specific first. Anything unmatched falls
// through to AnyAuthenticated — the default is deny, never open access.
var Rules = []Rule{
	{Prefix: "/api/auth/", Requirement: Public},
	{Prefix: "/api/public/", Requirement: Public},
	{Prefix: "/api/admin/", Requirement: AdminOnly},
	{Prefix: "/api/user/", Requirement: AnyAuthenticated},
	{Prefix: "/health", Requirement: Public},
	{Prefix: "/metrics", Requirement: Public},
}

// RequirementFor returns the access tier for path: the first matching rule,
// or AnyAuthenticated when nothing matches.
func RequirementFor(path string) Requirement {
	for _, rule := range Rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Requirement
		}
	}
	return AnyAuthenticated
}

// AllowedRoles returns the role set satisfying r; nil means no token needed.
func (r Requirement) AllowedRoles() []domain.Role {
	switch r {
	case Public:
		return nil
	case AdminOnly:
		return []domain.Role{domain.RoleAdmin}
	default:
		return []domain.Role{domain.RoleUser, domain.RoleAdmin}
	}
}
