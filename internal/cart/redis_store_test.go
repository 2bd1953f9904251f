package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"bookstore/pkg/domain"
)

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	redis := miniredis.RunT(t)
	resolve := catalogResolver(domain.Book{ID: 1, Title: "A", PriceCents: 1000})
	s := NewRedisSessionStore(redis.Addr(), "", 30*time.Minute, resolve)
	ctx := context.Background()

	c, err := s.Get(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart on first visit, got %d items", len(c.Items))
	}

	c.AddItem(domain.Book{ID: 1, Title: "A", PriceCents: 1000}, 2)
	if err := s.Put(ctx, "visitor-1", &c); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart after reload: %+v", got.Items)
	}
	if got.Items[0].Book == nil || got.Items[0].Book.Title != "A" {
		t.Fatalf("expected book re-resolved on load")
	}
	if got.Items[0].LineItemID == 0 {
		t.Fatalf("expected line item id assigned on save")
	}
}

func TestRedisSessionStoreSetsTTL(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.Addr(), "", 30*time.Minute, nil)

	c := domain.Cart{}
	c.AddItem(domain.Book{ID: 1, PriceCents: 500}, 1)
	if err := s.Put(context.Background(), "visitor-1", &c); err != nil {
		t.Fatalf("put: %v", err)
	}

	if ttl := redis.TTL("cart:visitor-1"); ttl != 30*time.Minute {
		t.Fatalf("ttl = %v, want 30m", ttl)
	}

	// The blob is gone once the idle timeout elapses.
	redis.FastForward(31 * time.Minute)
	got, err := s.Get(context.Background(), "visitor-1")
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected expired cart to come back empty")
	}
}

func TestRedisSessionStoreRecoversFromGarbageBlob(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.Addr(), "", 30*time.Minute, nil)

	if err := redis.Set("cart:visitor-1", "{{not json"); err != nil {
		t.Fatalf("seed garbage: %v", err)
	}
	got, err := s.Get(context.Background(), "visitor-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected empty cart from garbage blob")
	}
}

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	resolve := catalogResolver(domain.Book{ID: 1, Title: "A", PriceCents: 1000})
	s := NewMemorySessionStore(resolve)
	ctx := context.Background()

	c, err := s.Get(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	c.AddItem(domain.Book{ID: 1, Title: "A", PriceCents: 1000}, 3)
	if err := s.Put(ctx, "visitor-1", &c); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("unexpected cart after reload: %+v", got.Items)
	}

	// Sessions are isolated.
	other, err := s.Get(ctx, "visitor-2")
	if err != nil {
		t.Fatalf("get other: %v", err)
	}
	if len(other.Items) != 0 {
		t.Fatalf("expected other session to be empty")
	}
}
