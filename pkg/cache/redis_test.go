package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis implements the commands RedisCache issues. failures makes the
// next n commands fail with a connection error.
type fakeRedis struct {
	redis.UniversalClient
	data     map[string][]byte
	ttls     map[string]time.Duration
	failures int
	calls    int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

var errConnRefused = errors.New("dial tcp: connection refused")

func (f *fakeRedis) fail() bool {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return true
	}
	return false
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.fail() {
		return redis.NewStringResult("", errConnRefused)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if f.fail() {
		return redis.NewStatusResult("", errConnRefused)
	}
	f.data[key] = value.([]byte)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.fail() {
		return redis.NewIntResult(0, errConnRefused)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := NewRedisCacheFromClient(fake, "nw:")

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if fake.ttls["nw:k"] != time.Minute {
		t.Errorf("ttl = %v, want 1m", fake.ttls["nw:k"])
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, ok := fake.data["nw:k"]; ok {
		t.Error("Delete did not remove the prefixed key")
	}
}

func TestRedisCacheRetries(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond
	ctx := context.Background()

	fake := newFakeRedis()
	c := NewRedisCacheFromClient(fake, "")

	fake.failures = 2
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set should succeed on the third attempt: %v", err)
	}
	if fake.calls != 3 {
		t.Errorf("calls = %d, want 3", fake.calls)
	}

	fake.failures = 5
	_, _, err := c.Get(ctx, "k")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get error = %v, want ErrNetwork", err)
	}
}

func TestRetryableClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection", errConnRefused, true},
		{"canceled", context.Canceled, false},
		{"server reply", redis.Nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(retryable(tt.err)); got != tt.want {
				t.Errorf("IsRetryable(retryable(%v)) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
