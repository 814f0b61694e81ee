package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lokesh-katari/auth-service/internal/core/domain"
)

const profileTTL = 5 * time.Minute

// cachedProfile is the stored shape. The password hash is deliberately
// excluded: the cache only ever serves profile reads.
type cachedProfile struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// ProfileCache is a read-through cache for profile lookups backed by Redis.
// Key format: profile:<username>
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile for username, or (nil, nil) on a miss.
func (p *ProfileCache) Get(ctx context.Context, username string) (*domain.User, error) {
	raw, err := p.client.Get(ctx, p.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var cp cachedProfile
	if err := json.Unmarshal(raw, &cp); err != nil {
		// A corrupt entry is a miss; it will be overwritten on the next Set.
		return nil, nil
	}

	roles := make([]domain.Role, len(cp.Roles))
	for i, r := range cp.Roles {
		roles[i] = domain.Role(r)
	}
	return &domain.User{
		ID:       cp.ID,
		Username: cp.Username,
		Email:    cp.Email,
		Roles:    roles,
	}, nil
}

// Set stores the user's profile (expires after profileTTL).
func (p *ProfileCache) Set(ctx context.Context, user *domain.User) error {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}
	raw, err := json.Marshal(cachedProfile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	})
	if err != nil {
		return fmt.Errorf("profile cache marshal: %w", err)
	}
	return p.client.Set(ctx, p.key(user.Username), raw, profileTTL).Err()
}

// Invalidate drops the cached profile for username.
func (p *ProfileCache) Invalidate(ctx context.Context, username string) error {
	return p.client.Del(ctx, p.key(username)).Err()
}

func (p *ProfileCache) key(username string) string {
	return "profile:" + username
}
