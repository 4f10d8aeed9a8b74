package cart_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
	"storefront/internal/migrate"
	cartrepo "storefront/internal/repository/cart"
	productrepo "storefront/internal/repository/product"
	userrepo "storefront/internal/repository/user"
)

// testPool connects to the database named by TEST_DB_DSN, applies
// migrations and wipes the tables. Tests are skipped when no database
// is available.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE cart_items, carts, sessions, users, products CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

func seedUserAndProduct(t *testing.T, pool *pgxpool.Pool) (userID, productID string) {
	t.Helper()
	ctx := context.Background()
	u, err := userrepo.NewPostgres(pool, nil).FindOrCreateByEmail(ctx, "cart-test@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	p, err := productrepo.NewPostgres(pool, nil).Upsert(ctx, domain.Product{
		Name:       "Integration Widget",
		PriceCents: 1999,
		Stock:      5,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return u.ID, p.ID
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	pool := testPool(t)
	userID, _ := seedUserAndProduct(t, pool)
	repo := cartrepo.NewPostgres(pool, nil)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same cart, got %s then %s", first.ID, second.ID)
	}
}

func TestAddItemIncrements(t *testing.T) {
	pool := testPool(t)
	userID, productID := seedUserAndProduct(t, pool)
	repo := cartrepo.NewPostgres(pool, nil)
	ctx := context.Background()

	cart, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if err := repo.AddItem(ctx, cart.ID, productID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.AddItem(ctx, cart.ID, productID, 3); err != nil {
		t.Fatalf("add again: %v", err)
	}

	got, err := repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 5 {
		t.Fatalf("expected one line qty 5, got %+v", got.Lines)
	}
	if got.TotalCents() != 5*1999 {
		t.Fatalf("expected total %d, got %d", 5*1999, got.TotalCents())
	}
}

func TestSetItemQuantityOverwritesAndDeletes(t *testing.T) {
	pool := testPool(t)
	userID, productID := seedUserAndProduct(t, pool)
	repo := cartrepo.NewPostgres(pool, nil)
	ctx := context.Background()

	cart, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if err := repo.AddItem(ctx, cart.ID, productID, 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.SetItemQuantity(ctx, cart.ID, productID, 2); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Lines) != 1 || got.Lines[0].Quantity != 2 {
		t.Fatalf("expected overwrite to 2, got %+v", got.Lines)
	}

	if err := repo.SetItemQuantity(ctx, cart.ID, productID, 0); err != nil {
		t.Fatalf("set zero: %v", err)
	}
	got, err = repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if len(got.Lines) != 0 {
		t.Fatalf("expected line deleted, got %+v", got.Lines)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	pool := testPool(t)
	userID, productID := seedUserAndProduct(t, pool)
	repo := cartrepo.NewPostgres(pool, nil)
	ctx := context.Background()

	cart, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if err := repo.AddItem(ctx, cart.ID, productID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		t.Fatalf("remove again: %v", err)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	pool := testPool(t)
	userID, _ := seedUserAndProduct(t, pool)
	repo := cartrepo.NewPostgres(pool, nil)
	ctx := context.Background()

	cart, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	err = repo.AddItem(ctx, cart.ID, "00000000-0000-0000-0000-000000000000", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing product, got %v", err)
	}
}

func TestConcurrentAddsNeverLoseUpdates(t *testing.T) {
	pool := testPool(t)
	userID, productID := seedUserAndProduct(t, pool)
	repo := cartrepo.NewPostgres(pool, nil)
	ctx := context.Background()

	cart, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}

	const workers = 20
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return repo.AddItem(ctx, cart.ID, productID, 1)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent adds: %v", err)
	}

	got, err := repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(got.Lines))
	}
	if got.Lines[0].Quantity != workers {
		t.Fatalf("expected quantity %d, got %d", workers, got.Lines[0].Quantity)
	}
}

func TestConcurrentGetOrCreateYieldsOneCart(t *testing.T) {
	pool := testPool(t)
	userID, _ := seedUserAndProduct(t, pool)
	repo := cartrepo.NewPostgres(pool, nil)
	ctx := context.Background()

	const workers = 10
	ids := make([]string, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			c, err := repo.GetOrCreate(ctx, userID)
			if err != nil {
				return err
			}
			ids[i] = c.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent get or create: %v", err)
	}
	for i := 1; i < workers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("expected a single cart, got %s and %s", ids[0], ids[i])
		}
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM carts WHERE user_id = $1`, userID).Scan(&count); err != nil {
		t.Fatalf("count carts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 cart row, got %d", count)
	}
}
