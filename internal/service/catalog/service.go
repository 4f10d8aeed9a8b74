package catalog

import (
	"context"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPageSize matches the storefront grid of 12 products per page.
	DefaultPageSize = 12
	// MaxPageSize bounds how much of the catalog one request can pull.
	MaxPageSize = 100
)

// Service answers read-only catalog queries.
type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// SearchInput carries the raw query parameters. Zero Page/PageSize take the
// defaults; explicit out-of-range values are rejected.
type SearchInput struct {
	Query    string
	Page     int
	PageSize int
}

// Search returns one deterministic page of products plus the total match
// count. Pages beyond the last are empty, not an error.
func (s *Service) Search(ctx context.Context, in SearchInput) (*domain.ProductPage, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = DefaultPageSize
	}
	if in.Page < 1 {
		return nil, domain.Validation("page", "must be at least 1")
	}
	if in.PageSize < 1 || in.PageSize > MaxPageSize {
		return nil, domain.Validation("pageSize", "must be between 1 and 100")
	}

	text := strings.TrimSpace(in.Query)
	offset := (in.Page - 1) * in.PageSize

	var (
		items []domain.Product
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.Search(gctx, productrepo.SearchQuery{
			Text:   text,
			Limit:  in.PageSize,
			Offset: offset,
		})
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountSearch(gctx, text)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []domain.Product{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + in.PageSize - 1) / in.PageSize
	}

	return &domain.ProductPage{
		Items:      items,
		TotalCount: total,
		Page:       in.Page,
		PageSize:   in.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}
