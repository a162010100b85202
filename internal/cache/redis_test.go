package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRedis(rdb, ttl, log), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t, time.Minute)

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}

	c.Set(ctx, "documents:list:v1:users:limit=50:after=", []byte(`{"count":1}`))

	got, ok := c.Get(ctx, "documents:list:v1:users:limit=50:after=")
	if !ok || string(got) != `{"count":1}` {
		t.Fatalf("expected cached value, got %q ok=%v", got, ok)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok := c.Get(ctx, "documents:list:v1:users:limit=50:after="); ok {
		t.Fatalf("expected key to expire after ttl")
	}
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t, time.Minute)

	c.Set(ctx, "documents:list:v1:users:limit=50:after=", []byte("a"))
	c.Set(ctx, "documents:list:v1:users:limit=5:after=abc", []byte("b"))
	c.Set(ctx, "documents:list:v1:itineraries:limit=50:after=", []byte("c"))

	c.DeletePrefix(ctx, "documents:list:v1:users:")

	if mr.Exists("documents:list:v1:users:limit=50:after=") || mr.Exists("documents:list:v1:users:limit=5:after=abc") {
		t.Fatalf("users pages should be deleted")
	}
	if !mr.Exists("documents:list:v1:itineraries:limit=50:after=") {
		t.Fatalf("itineraries page should survive")
	}
}

func TestRedisCache_UnavailableIsAMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedisCache(t, time.Minute)

	mr.Close()

	c.Set(ctx, "k", []byte("v"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected miss while redis is down")
	}
	c.DeletePrefix(ctx, "k")
}
