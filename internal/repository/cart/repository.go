package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists carts and line items. Mutations are atomic single
// statements; the UNIQUE (cart_id, product_id) constraint closes the
// find-then-write race between concurrent requests.
type Repository interface {
	// GetOrCreate returns the user's cart, creating it atomically on first
	// use. The returned cart has no lines loaded.
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	// GetByUser returns the cart with all lines and joined products, or
	// domain.ErrNotFound when the user has no cart yet.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem merges quantity into the (cart, product) line additively,
	// creating the line when absent.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	// SetItemQuantity overwrites the line quantity, creating the line when
	// absent. Quantity zero or below deletes the line; deleting an absent
	// line is not an error.
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error
	// RemoveItem deletes the line if present. Idempotent.
	RemoveItem(ctx context.Context, cartID, productID string) error
}
