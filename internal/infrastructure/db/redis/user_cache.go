package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/notesapp/notes-manager/internal/core/domain"
)

const defaultUserTTL = 10 * time.Minute

// UserCache caches user profiles by ID for token authentication.
// Key format: user:<id>. Password hashes are never written to Redis.
type UserCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewUserCache wraps the given Redis client. A non-positive ttl uses the default.
func NewUserCache(client redis.Cmdable, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

type cachedUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Get returns (nil, nil) on a cache miss.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("user cache get: %w", err)
	}

	var cu cachedUser
	if err := json.Unmarshal(raw, &cu); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return &domain.User{
		ID:        cu.ID,
		Username:  cu.Username,
		Email:     cu.Email,
		CreatedAt: cu.CreatedAt,
		UpdatedAt: cu.UpdatedAt,
	}, nil
}

// Set stores the user for the configured TTL.
func (c *UserCache) Set(ctx context.Context, u *domain.User) error {
	raw, err := json.Marshal(cachedUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	return c.client.Set(ctx, key(u.ID), raw, c.ttl).Err()
}

func key(id string) string {
	return "user:" + id
}
