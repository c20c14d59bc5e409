// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"member_portal/internal/feature/accounts/domain/entity"
	"member_portal/internal/feature/accounts/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis caching for
// FindByID, which runs on every authenticated request to rehydrate the
// session-bound identity. It implements the decorator pattern, transparently
// adding caching without modifying the underlying repository.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingUserRepositoryがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
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

// Create inserts the user and warms the cache entry for its new ID.
func (c *CachingUserRepository) Create(ctx context.Context, user *entity.User) error {
	// First persist to the underlying repository
	if err := c.inner.Create(ctx, user); err != nil {
		return err
	}
	// Warm the cache (best effort)
	if c.rdb == nil {
		return nil
	}
	if b, err := json.Marshal(user); err == nil {
		_ = c.rdb.Set(ctx, c.cacheKey(user.ID), b, c.ttl).Err()
	}
	return nil
}

// FindByEmail delegates to the underlying repository.
// The login path compares password digests and must see fresh data.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByUsername delegates to the underlying repository.
// It serves only uniqueness pre-checks during registration.
func (c *CachingUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return c.inner.FindByUsername(ctx, username)
}

// FindByID retrieves a user, checking cache first then falling back to the database.
// Not-found results are not cached, so a deleted record surfaces immediately.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.User
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the cache key for a user ID.
func (c *CachingUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}
