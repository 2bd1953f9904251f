package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newLimiter(t *testing.T, redis *miniredis.Miniredis, limit int) *FixedWindowLimiter {
	t.Helper()
	l, err := NewRedisFixedWindowLimiter(redis.Addr(), "", "cart", limit, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	return l
}

func TestAllowStopsAtWindowBudget(t *testing.T) {
	redis := miniredis.RunT(t)
	l := newLimiter(t, redis, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("session-1") {
			t.Fatalf("hit %d should be within budget", i+1)
		}
	}
	if l.Allow("session-1") {
		t.Fatalf("hit over budget should be blocked")
	}
}

func TestAllowCountsKeysSeparately(t *testing.T) {
	redis := miniredis.RunT(t)
	l := newLimiter(t, redis, 1)

	if !l.Allow("session-1") {
		t.Fatalf("first session should be allowed")
	}
	if !l.Allow("session-2") {
		t.Fatalf("second session should have its own budget")
	}
	if l.Allow("session-1") {
		t.Fatalf("first session should be exhausted")
	}
}

func TestAllowFailsClosedWhenRedisIsDown(t *testing.T) {
	redis := miniredis.RunT(t)
	l := newLimiter(t, redis, 5)

	redis.Close()
	if l.Allow("session-1") {
		t.Fatalf("allow should fail closed on redis errors")
	}
}

func TestNewRedisFixedWindowLimiterValidation(t *testing.T) {
	if _, err := NewRedisFixedWindowLimiter("", "", "cart", 1, time.Minute); err == nil {
		t.Fatalf("expected error for missing addr")
	}
	if _, err := NewRedisFixedWindowLimiter("localhost:6379", "", "cart", 0, time.Minute); err == nil {
		t.Fatalf("expected error for zero limit")
	}
	if _, err := NewRedisFixedWindowLimiter("localhost:6379", "", "cart", 1, 0); err == nil {
		t.Fatalf("expected error for zero window")
	}
}
