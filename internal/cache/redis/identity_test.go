package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/testutil"
)

func newTestCache(t *testing.T, ttl time.Duration) (*IdentityCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return NewIdentityCache(client, ttl, testutil.MakeNoopLogger()), mr
}

func testUser() model.User {
	avatar := "http://localhost:9000/contacts-avatars/avatars/1"
	return model.User{
		ID:        1,
		Username:  "deadpool",
		Email:     "deadpool@example.com",
		Avatar:    &avatar,
		Confirmed: true,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestIdentityCache_LookupMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	_, err := cache.Lookup(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrCacheMiss)
}

func TestIdentityCache_FillThenLookup(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)
	user := testUser()

	cache.Fill(ctx, user.Email, user)

	assert.True(t, mr.Exists("user:deadpool@example.com"))
	assert.Equal(t, time.Minute, mr.TTL("user:deadpool@example.com"))

	got, err := cache.Lookup(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestIdentityCache_SnapshotOmitsSecrets(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)
	user := testUser()
	fingerprint := "abc"
	user.PasswordHash = "$2a$10$secret"
	user.RefreshToken = &fingerprint

	cache.Fill(ctx, user.Email, user)

	raw, err := mr.Get("user:deadpool@example.com")
	require.NoError(t, err)
	assert.NotContains(t, raw, "$2a$10$secret")
	assert.NotContains(t, raw, "refresh")

	got, err := cache.Lookup(ctx, user.Email)
	require.NoError(t, err)
	assert.Empty(t, got.PasswordHash)
	assert.Nil(t, got.RefreshToken)
}

func TestIdentityCache_FillReplacesEntry(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)
	user := testUser()

	cache.Fill(ctx, user.Email, user)
	user.Username = "wade"
	cache.Fill(ctx, user.Email, user)

	got, err := cache.Lookup(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, "wade", got.Username)
}

func TestIdentityCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, 0)
	user := testUser()

	cache.Fill(ctx, user.Email, user)
	assert.Equal(t, DefaultUserTTL, mr.TTL("user:deadpool@example.com"))

	mr.FastForward(DefaultUserTTL - time.Second)
	_, err := cache.Lookup(ctx, user.Email)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	_, err = cache.Lookup(ctx, user.Email)
	assert.ErrorIs(t, err, model.ErrCacheMiss)
}

func TestIdentityCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)
	user := testUser()

	cache.Fill(ctx, user.Email, user)
	cache.Invalidate(ctx, user.Email)

	assert.False(t, mr.Exists("user:deadpool@example.com"))
	_, err := cache.Lookup(ctx, user.Email)
	assert.ErrorIs(t, err, model.ErrCacheMiss)
}

func TestIdentityCache_UndecodableEntry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set("user:deadpool@example.com", "\x80\x04pickle"))

	_, err := cache.Lookup(ctx, "deadpool@example.com")
	assert.ErrorIs(t, err, model.ErrCacheMiss)
	assert.False(t, mr.Exists("user:deadpool@example.com"))
}

func TestIdentityCache_Unreachable(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	cache := NewIdentityCache(client, time.Minute, testutil.MakeNoopLogger())
	user := testUser()
	mr.Close()

	assert.NotPanics(t, func() {
		cache.Fill(ctx, user.Email, user)
		cache.Invalidate(ctx, user.Email)
	})

	_, err = cache.Lookup(ctx, user.Email)
	assert.ErrorIs(t, err, model.ErrCacheMiss)
}

func TestPing(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	require.NoError(t, Ping(context.Background(), client))

	mr.Close()
	assert.Error(t, Ping(context.Background(), client))
}

func TestNewClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/0", testutil.MakeNoopLogger())
	require.NoError(t, err)
	defer client.Close()

	_, err = NewClient(context.Background(), "://bad", testutil.MakeNoopLogger())
	assert.Error(t, err)
}
