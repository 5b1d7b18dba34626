package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/metrics"
	"github.com/dtroode/contacts-server/internal/model"
)

// DefaultUserTTL is how long an identity snapshot stays cached.
const DefaultUserTTL = 900 * time.Second

const userKeyPrefix = "user:"

var _ model.IdentityCache = (*IdentityCache)(nil)

// IdentityCache caches identity snapshots keyed by email. Redis failures are
// logged and reported as misses; they never fail the caller.
type IdentityCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
	logger *logger.Logger
}

// NewIdentityCache creates an identity cache. A non-positive ttl selects DefaultUserTTL.
func NewIdentityCache(client goredis.UniversalClient, ttl time.Duration, logger *logger.Logger) *IdentityCache {
	if ttl <= 0 {
		ttl = DefaultUserTTL
	}
	return &IdentityCache{client: client, ttl: ttl, logger: logger}
}

// Lookup returns the cached identity for email or model.ErrCacheMiss.
func (c *IdentityCache) Lookup(ctx context.Context, email string) (model.User, error) {
	raw, err := c.client.Get(ctx, userKey(email)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.RecordCacheLookup(metrics.CacheMiss)
		return model.User{}, model.ErrCacheMiss
	}
	if err != nil {
		c.logger.Warn("Identity cache: lookup failed, falling back to store",
			"email", email,
			"error", err.Error())
		metrics.RecordCacheLookup(metrics.CacheError)
		return model.User{}, model.ErrCacheMiss
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		c.logger.Warn("Identity cache: dropping undecodable entry",
			"email", email,
			"error", err.Error())
		metrics.RecordCacheLookup(metrics.CacheError)
		c.Invalidate(ctx, email)
		return model.User{}, model.ErrCacheMiss
	}

	metrics.RecordCacheLookup(metrics.CacheHit)
	return user, nil
}

// Fill stores a snapshot of user under email, replacing any existing entry.
func (c *IdentityCache) Fill(ctx context.Context, email string, user model.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		c.logger.Error("Identity cache: failed to encode identity",
			"email", email,
			"error", err.Error())
		metrics.RecordCacheWriteError("fill")
		return
	}

	if err := c.client.Set(ctx, userKey(email), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Identity cache: fill failed",
			"email", email,
			"error", err.Error())
		metrics.RecordCacheWriteError("fill")
	}
}

// Invalidate removes the entry for email.
func (c *IdentityCache) Invalidate(ctx context.Context, email string) {
	if err := c.client.Del(ctx, userKey(email)).Err(); err != nil {
		c.logger.Warn("Identity cache: invalidate failed",
			"email", email,
			"error", err.Error())
		metrics.RecordCacheWriteError("invalidate")
	}
}

func userKey(email string) string {
	return userKeyPrefix + email
}
