package repositories

import (
	"context"

	"pcstore/internal/cart"
)

// CartStore keeps one cart per session id between requests.
type CartStore interface {
	// Load returns the session's cart, or an empty cart when none is stored.
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
