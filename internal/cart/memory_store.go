package cart

import (
	"context"
	"sync"

	"bookstore/pkg/domain"
)

// MemorySessionStore keeps cart blobs in-process for dev mode and tests. It
// runs the same load/save reconciliation as the Redis store but never
// expires entries.
type MemorySessionStore struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	resolve ResolveFunc
}

// NewMemorySessionStore initializes an empty in-memory session cart store.
func NewMemorySessionStore(resolve ResolveFunc) *MemorySessionStore {
	return &MemorySessionStore{
		blobs:   make(map[string][]byte),
		resolve: resolve,
	}
}

// Get loads and reconciles the session's cart.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	s.mu.RLock()
	blob := s.blobs[sessionID]
	s.mu.RUnlock()
	return Load(ctx, blob, s.resolve)
}

// Put serializes the cart and stores it under the session key.
func (s *MemorySessionStore) Put(_ context.Context, sessionID string, cart *domain.Cart) error {
	blob, err := Save(cart)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.blobs[sessionID] = blob
	s.mu.Unlock()
	return nil
}
