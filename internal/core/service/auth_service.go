package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
	"github.com/lokesh-katari/auth-service/internal/core/ports"
	"github.com/lokesh-katari/auth-service/internal/pkg/password"
	"github.com/lokesh-katari/auth-service/internal/pkg/token"
)

// AdminSeed holds the credentials used to create the default administrator
// when no admin account exists at startup.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// AuthService implements registration, login, admin user creation and the
// one-time admin bootstrap.
type AuthService struct {
	repo   ports.UserRepository
	hasher *password.Hasher
	codec  *token.Codec
	seed   AdminSeed
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *password.Hasher, codec *token.Codec, seed AdminSeed, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, codec: codec, seed: seed, log: log}
}

// Register creates a self-service account with the default USER role.
// Username and email uniqueness are checked before any write; the store's
// unique indexes settle concurrent registrations racing on the same value.
func (s *AuthService) Register(ctx context.Context, username, email, pass string) (*domain.User, error) {
	if username == "" || email == "" || pass == "" {
		return nil, domain.ErrValidation
	}
	return s.createUser(ctx, username, email, pass, []domain.Role{domain.RoleUser})
}

// CreateUser creates an account with an explicit role set. Callers are
// expected to have passed the admin gate already; an empty role set defaults
// to USER.
func (s *AuthService) CreateUser(ctx context.Context, username, email, pass string, roles []domain.Role) (*domain.User, error) {
	if username == "" || email == "" || pass == "" {
		return nil, domain.ErrValidation
	}
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}
	for _, r := range roles {
		if !r.Valid() {
			return nil, domain.ErrInvalidRole
		}
	}
	return s.createUser(ctx, username, email, pass, roles)
}

func (s *AuthService) createUser(ctx context.Context, username, email, pass string, roles []domain.Role) (*domain.User, error) {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateUsername
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the credentials and issues a signed token carrying the
// user's role set. Unknown username and wrong password fail with the same
// ErrInvalidCredentials so responses never reveal which check failed.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, error) {
	if username == "" || pass == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	return s.codec.Issue(user.Username, user.Roles, time.Now().UTC())
}

// Profile returns the identity record for username.
func (s *AuthService) Profile(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// Stats returns the total number of accounts and how many hold ADMIN.
func (s *AuthService) Stats(ctx context.Context) (total, admins int64, err error) {
	if total, err = s.repo.Count(ctx); err != nil {
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	if admins, err = s.repo.CountByRole(ctx, domain.RoleAdmin); err != nil {
		return 0, 0, fmt.Errorf("count admins: %w", err)
	}
	return total, admins, nil
}

// BootstrapAdmin creates the seeded administrator account if and only if no
// user currently holds the ADMIN role. It is idempotent: a restart against a
// store that already has an admin is a no-op. Must run during the
// single-threaded startup phase, before the server accepts traffic.
func (s *AuthService) BootstrapAdmin(ctx context.Context) error {
	exists, err := s.repo.ExistsByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin presence: %w", err)
	}
	if exists {
		s.log.Debug().Msg("admin account present, bootstrap skipped")
		return nil
	}

	hash, err := s.hasher.Hash(s.seed.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		Username:     s.seed.Username,
		Email:        s.seed.Email,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleAdmin},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.repo.Create(ctx, admin); err != nil {
		// A concurrent bootstrap (multiple replicas starting at once) may
		// lose the insert race; the admin exists either way.
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info().Str("username", s.seed.Username).Msg("default admin account created")
	return nil
}
