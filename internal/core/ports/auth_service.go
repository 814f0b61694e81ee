package ports

import (
	"context"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

// AuthService orchestrates credential verification, token issuance and
// account creation.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	CreateUser(ctx context.Context, username, email, password string, roles []domain.Role) (*domain.User, error)
	Profile(ctx context.Context, username string) (*domain.User, error)
	Stats(ctx context.Context) (total, admins int64, err error)
	BootstrapAdmin(ctx context.Context) error
}

// ProfileCache is a read-through cache for identity records keyed by
// username. Get returns (nil, nil) on a miss; cache failures are soft —
// callers fall back to the repository.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, username string) error
}
