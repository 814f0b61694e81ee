package ports

import (
	"context"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

// UserRepository defines the persistence contract for identity records.
// Uniqueness of username and email is enforced by the store itself
// (atomic check-and-insert), so concurrent Create calls with the same
// username resolve to exactly one winner.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByRole(ctx context.Context, role domain.Role) (bool, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	Count(ctx context.Context) (int64, error)
}
