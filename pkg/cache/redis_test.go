package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	if _, hit, err := c.Get(ctx, "artifact:h:svg"); hit || err != nil {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "artifact:h:svg", []byte("<svg/>"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("zxdraw:artifact:h:svg") {
		t.Error("key not stored under the zxdraw prefix")
	}

	data, hit, err := c.Get(ctx, "artifact:h:svg")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "artifact:h:svg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "artifact:h:svg"); hit {
		t.Error("entry still present after Delete")
	}
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	mr.FastForward(2 * time.Minute)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should have expired")
	}
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	_ = mr.Set("other:key", "keep")
	for _, k := range []string{"a", "b"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d keys, want 2", n)
	}
	if !mr.Exists("other:key") {
		t.Error("Clear removed a key outside its prefix")
	}
}

func TestNewRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer mr.Close()

	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	c.Close()

	if _, err := NewRedisCache(context.Background(), "not a url"); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	mr, _ := miniredis.Run()
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), "redis://"+addr)
	if !IsRetryable(err) {
		t.Errorf("unreachable server should be retryable, got %v", err)
	}
}
