package product

import (
	"context"

	"storefront/internal/domain"
)

// SearchQuery selects a slice of the catalog. Text filters name and
// description case-insensitively; empty text matches everything.
type SearchQuery struct {
	Text   string
	Limit  int
	Offset int
}

type Repository interface {
	Search(ctx context.Context, q SearchQuery) ([]domain.Product, error)
	CountSearch(ctx context.Context, text string) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
