package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// fixtureRepo serves a fixed product slice already in catalog order
// (created_at desc, id asc) and applies the same filter the SQL does.
type fixtureRepo struct {
	products []domain.Product
	err      error
}

func (f *fixtureRepo) matches(text string) []domain.Product {
	if text == "" {
		return f.products
	}
	lower := strings.ToLower(text)
	var out []domain.Product
	for _, p := range f.products {
		if strings.Contains(strings.ToLower(p.Name), lower) || strings.Contains(strings.ToLower(p.Description), lower) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fixtureRepo) Search(_ context.Context, q productrepo.SearchQuery) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	matched := f.matches(q.Text)
	if q.Offset >= len(matched) {
		return nil, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], nil
}

func (f *fixtureRepo) CountSearch(_ context.Context, text string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.matches(text)), nil
}

func (f *fixtureRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fixtureRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func fixtureCatalog(n int) []domain.Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := make([]domain.Product, 0, n)
	// Newest first, matching the repository ordering.
	for i := n - 1; i >= 0; i-- {
		products = append(products, domain.Product{
			ID:        fmt.Sprintf("p-%03d", i),
			Name:      fmt.Sprintf("Product %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return products
}

func TestSearchDefaults(t *testing.T) {
	repo := &fixtureRepo{products: fixtureCatalog(30)}
	svc := New(repo)

	page, err := svc.Search(context.Background(), SearchInput{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Page != 1 || page.PageSize != DefaultPageSize {
		t.Fatalf("expected defaults page=1 size=%d, got %+v", DefaultPageSize, page)
	}
	if len(page.Items) != DefaultPageSize {
		t.Fatalf("expected %d items, got %d", DefaultPageSize, len(page.Items))
	}
	if page.TotalCount != 30 || page.TotalPages != 3 {
		t.Fatalf("expected total 30 over 3 pages, got %+v", page)
	}
}

func TestSearchValidation(t *testing.T) {
	svc := New(&fixtureRepo{})

	_, err := svc.Search(context.Background(), SearchInput{Page: -1})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "page" {
		t.Fatalf("expected page validation error, got %v", err)
	}

	_, err = svc.Search(context.Background(), SearchInput{PageSize: MaxPageSize + 1})
	if !errors.As(err, &vErr) || vErr.Field != "pageSize" {
		t.Fatalf("expected pageSize validation error, got %v", err)
	}
}

func TestPaginationDeterminism(t *testing.T) {
	repo := &fixtureRepo{products: fixtureCatalog(30)}
	svc := New(repo)
	ctx := context.Background()

	seen := map[string]int{}
	var collected []domain.Product
	for p := 1; p <= 3; p++ {
		page, err := svc.Search(ctx, SearchInput{Page: p, PageSize: 12})
		if err != nil {
			t.Fatalf("page %d: %v", p, err)
		}
		if page.TotalCount != 30 {
			t.Fatalf("page %d: expected totalCount 30, got %d", p, page.TotalCount)
		}
		for _, item := range page.Items {
			seen[item.ID]++
			collected = append(collected, item)
		}
	}

	if len(collected) != 30 {
		t.Fatalf("expected 30 items across pages, got %d", len(collected))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("product %s appeared %d times", id, count)
		}
	}
	for i := 1; i < len(collected); i++ {
		if collected[i].CreatedAt.After(collected[i-1].CreatedAt) {
			t.Fatalf("items out of descending creation order at index %d", i)
		}
	}
}

func TestPageBeyondLastIsEmpty(t *testing.T) {
	repo := &fixtureRepo{products: fixtureCatalog(5)}
	svc := New(repo)

	page, err := svc.Search(context.Background(), SearchInput{Page: 99, PageSize: 12})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Items))
	}
	if page.Items == nil {
		t.Fatalf("expected empty slice, not nil")
	}
	if page.TotalCount != 5 || page.TotalPages != 1 {
		t.Fatalf("unexpected counts %+v", page)
	}
}

func TestEmptyCatalogHasZeroPages(t *testing.T) {
	svc := New(&fixtureRepo{})
	page, err := svc.Search(context.Background(), SearchInput{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalCount != 0 || page.TotalPages != 0 || len(page.Items) != 0 {
		t.Fatalf("expected empty result, got %+v", page)
	}
}

func TestSearchFiltersNameAndDescription(t *testing.T) {
	repo := &fixtureRepo{products: []domain.Product{
		{ID: "a", Name: "Wireless Headphones", Description: "noise cancelling"},
		{ID: "b", Name: "Keyboard", Description: "wireless mechanical"},
		{ID: "c", Name: "Desk Lamp", Description: "LED"},
	}}
	svc := New(repo)

	page, err := svc.Search(context.Background(), SearchInput{Query: "WIRELESS"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalCount != 2 || len(page.Items) != 2 {
		t.Fatalf("expected 2 matches, got %+v", page)
	}
}

func TestSearchPropagatesStoreError(t *testing.T) {
	svc := New(&fixtureRepo{err: errors.New("db down")})
	_, err := svc.Search(context.Background(), SearchInput{})
	if err == nil || !strings.Contains(err.Error(), "db down") {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestGet(t *testing.T) {
	repo := &fixtureRepo{products: []domain.Product{{ID: "a", Name: "Lamp"}}}
	svc := New(repo)

	p, err := svc.Get(context.Background(), "a")
	if err != nil || p.Name != "Lamp" {
		t.Fatalf("unexpected result %+v err=%v", p, err)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "  "); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for blank id, got %v", err)
	}
}
