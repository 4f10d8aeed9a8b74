package cart

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
)

// MaxLineQuantity caps a single line to block abusive requests.
const MaxLineQuantity = 100

// Service exposes cart mutations over the caller's own cart. Product stock is
// advisory display data; adding an out-of-stock product is accepted.
type Service struct {
	repo     cartrepo.Repository
	products productGetter
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

// AddItem merges quantity additively into the (cart, product) line, creating
// the cart and the line as needed. Returns the updated cart with joined
// products so callers can render totals without a second round trip.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validation("productId", "required")
	}
	if quantity < 1 {
		return nil, domain.Validation("quantity", "must be a positive integer")
	}
	if quantity > MaxLineQuantity {
		return nil, domain.Validation("quantity", "must not exceed 100")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// UpdateItemQuantity overwrites the line quantity. Zero deletes the line;
// deleting an absent line succeeds. The caller must already have a cart.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validation("productId", "required")
	}
	if quantity < 0 {
		return nil, domain.Validation("quantity", "must not be negative")
	}
	if quantity > MaxLineQuantity {
		return nil, domain.Validation("quantity", "must not exceed 100")
	}

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetItemQuantity(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// RemoveItem deletes the line if present. Removing an absent item, or
// removing from a user with no cart yet, succeeds and returns the cart
// unchanged.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, domain.Validation("productId", "required")
	}

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return emptyCart(userID), nil
		}
		return nil, err
	}
	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// GetCart returns the caller's cart with joined product data, or an empty
// cart shape when none exists yet. Never a not-found error.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return emptyCart(userID), nil
		}
		return nil, err
	}
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	return cart, nil
}

func emptyCart(userID string) *domain.Cart {
	return &domain.Cart{UserID: userID, Lines: []domain.CartLine{}}
}
