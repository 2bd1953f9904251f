// Package ratelimit provides a Redis fixed-window counter, used to cap cart
// mutation rates per session.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrWithExpiry counts a hit in the window key, stamping the expiry on the
// first hit so abandoned windows clean themselves up.
var incrWithExpiry = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// FixedWindowLimiter caps hits per key within fixed wall-clock windows. The
// counters live in Redis so every instance shares one budget.
type FixedWindowLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisFixedWindowLimiter connects a limiter allowing limit hits per
// window under the given key prefix.
func NewRedisFixedWindowLimiter(addr, password, prefix string, limit int, window time.Duration) (*FixedWindowLimiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, errors.New("ratelimit: limit and window must be positive")
	}
	if addr == "" {
		return nil, errors.New("ratelimit: redis addr is required")
	}
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &FixedWindowLimiter{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}, nil
}

// Allow reports whether key has budget left in the current window. Redis
// failures count as exhausted: a broken limiter must not become an open one.
func (l *FixedWindowLimiter) Allow(key string) bool {
	slot := time.Now().UnixMilli() / l.window.Milliseconds()
	windowKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := incrWithExpiry.Run(ctx, l.client, []string{windowKey}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false
	}
	return n <= l.limit
}
