// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"user_backend/internal/feature/user/domain/entity"
	"user_backend/internal/feature/user/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis caching.
// Lookups by email and the full listing are read through the cache; every
// write invalidates the entries it may have made stale. Misses are not cached.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
// A nil rdb disables caching entirely.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByEmail checks the cache first, then falls back to the inner repository.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindByEmail(ctx, email)
	}

	key := c.emailKey(email)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	u, err := c.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		_ = c.rdb.Set(ctx, c.idKey(u.ID), u.Email, c.ttl).Err()
	}
	return u, nil
}

// Save persists u and invalidates the entries for its old and new email.
func (c *CachingUserRepository) Save(ctx context.Context, u *entity.User) (*entity.User, error) {
	if c.rdb == nil {
		return c.inner.Save(ctx, u)
	}

	// The old email is only known through the id index filled on lookup.
	var stale []string
	if u != nil && u.ID != "" {
		if old, err := c.rdb.Get(ctx, c.idKey(u.ID)).Result(); err == nil {
			stale = append(stale, c.emailKey(old), c.idKey(u.ID))
		} else if !errors.Is(err, redis.Nil) {
			slog.Warn("user cache lookup failed", "error", err, "id", u.ID)
		}
	}

	saved, err := c.inner.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, append(stale, c.emailKey(saved.Email))...)
	return saved, nil
}

// DeleteByEmail deletes through the inner repository and invalidates the email entry.
func (c *CachingUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	if err := c.inner.DeleteByEmail(ctx, email); err != nil {
		return err
	}
	if c.rdb != nil {
		c.invalidate(ctx, c.emailKey(email))
	}
	return nil
}

// FindAll checks the cache first, then falls back to the inner repository.
func (c *CachingUserRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.allKey()
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.User
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// invalidate deletes keys plus the listing. Best effort: the write already succeeded.
func (c *CachingUserRepository) invalidate(ctx context.Context, keys ...string) {
	keys = append(keys, c.allKey())
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("user cache invalidation failed", "error", err, "keys", keys)
	}
}

func (c *CachingUserRepository) emailKey(email string) string {
	return fmt.Sprintf("%s:email:%s", c.namespace, email)
}

func (c *CachingUserRepository) idKey(id string) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, id)
}

func (c *CachingUserRepository) allKey() string {
	return c.namespace + ":all"
}
