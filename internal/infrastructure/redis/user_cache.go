package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nakama-dev/auth-backend/internal/application/auth"
	"github.com/nakama-dev/auth-backend/internal/domain"
)

// CachedUserRepo decorates an auth.UserRepo with a read-through Redis cache
// for GetByID, the hot path behind profile lookups. The cache is fail-open: a
// Redis error never fails the request, it just falls back to the store.
//
// GetByEmail deliberately bypasses the cache. It feeds the login path, which
// must always read the source of truth (and may include the password hash,
// which never enters the cache).
type CachedUserRepo struct {
	inner   auth.UserRepo
	rdb     *goredis.Client
	ttl     time.Duration
	keyPref string
}

func NewCachedUserRepo(inner auth.UserRepo, client *Client, ttl time.Duration) *CachedUserRepo {
	var rdb *goredis.Client
	if client != nil {
		rdb = client.rdb
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedUserRepo{
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		keyPref: "user:",
	}
}

// cachedUser is the wire form of a cache entry. The password hash is never
// part of it.
type cachedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CachedUserRepo) key(userID string) string {
	return c.keyPref + userID
}

func (c *CachedUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	if c.rdb != nil {
		if s, err := c.rdb.Get(ctx, c.key(id)).Result(); err == nil {
			var cu cachedUser
			if jerr := json.Unmarshal([]byte(s), &cu); jerr == nil {
				return domain.User{
					ID:        cu.ID,
					Name:      cu.Name,
					Email:     cu.Email,
					Role:      cu.Role,
					Active:    cu.Active,
					CreatedAt: cu.CreatedAt,
					UpdatedAt: cu.UpdatedAt,
				}, nil
			}
			// corrupt entry: fall through to the store
		}
	}

	u, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if c.rdb != nil {
		b, jerr := json.Marshal(cachedUser{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
		if jerr == nil {
			_ = c.rdb.Set(ctx, c.key(u.ID), b, c.ttl).Err()
		}
	}

	return u, nil
}

func (c *CachedUserRepo) GetByEmail(ctx context.Context, email string, includeHash bool) (domain.User, error) {
	return c.inner.GetByEmail(ctx, email, includeHash)
}

func (c *CachedUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return c.inner.Create(ctx, u)
}

func (c *CachedUserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	if err := c.inner.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return err
	}
	if c.rdb != nil {
		// best-effort invalidation; the UpdatedAt in a stale entry is harmless
		// but there is no reason to serve it for a full TTL
		_ = c.rdb.Del(ctx, c.key(userID)).Err()
	}
	return nil
}
