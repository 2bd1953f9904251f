package cart

import (
	"context"

	"bookstore/pkg/domain"
)

// SessionStore binds carts to opaque session identifiers. Implementations
// hold no cart state between calls; everything lives in the backing blob
// store under the session's expiry policy.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Put(ctx context.Context, sessionID string, cart *domain.Cart) error
}
