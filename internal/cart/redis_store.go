package cart

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"bookstore/pkg/domain"
)

const keyPrefix = "cart:"

// RedisSessionStore keeps cart blobs in Redis with an idle TTL, refreshed on
// every write.
type RedisSessionStore struct {
	client  *redis.Client
	ttl     time.Duration
	resolve ResolveFunc
}

// NewRedisSessionStore builds a Redis-backed session cart store.
func NewRedisSessionStore(addr, password string, ttl time.Duration, resolve ResolveFunc) *RedisSessionStore {
	return &RedisSessionStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl:     ttl,
		resolve: resolve,
	}
}

// Get loads and reconciles the session's cart. A missing key is a first
// visit and yields an empty cart.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	blob, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, err
	}
	return Load(ctx, blob, s.resolve)
}

// Put serializes the cart and writes it under the session key with TTL.
func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, cart *domain.Cart) error {
	blob, err := Save(cart)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return s.client.Set(ctx, keyPrefix+sessionID, blob, s.ttl).Err()
}
