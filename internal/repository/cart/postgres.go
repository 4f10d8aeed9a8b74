package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// maxWriteAttempts bounds transparent retries of serialization failures.
const maxWriteAttempts = 3

func (r *postgresRepo) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	// UNIQUE (user_id) makes this a single-statement find-or-create; the
	// no-op DO UPDATE returns the existing row instead of erroring.
	const q = `
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id::text, user_id::text, created_at
`
	var cart domain.Cart
	err := r.retry(ctx, "get or create cart", func() error {
		return r.pool.QueryRow(ctx, q, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, user_id::text, created_at
FROM carts
WHERE user_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("cart repo: get user_id=%s error=%v", userID, err)
		return nil, err
	}

	const linesQuery = `
SELECT ci.id::text, ci.cart_id::text, ci.product_id::text, ci.quantity, ci.created_at,
       p.id::text, p.name, p.description, p.price_cents, p.stock, p.category, p.image_url, p.created_at
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC, ci.id ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, cart.ID)
	if err != nil {
		r.logger.Printf("cart repo: list lines cart_id=%s error=%v", cart.ID, err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID, &line.CartID, &line.ProductID, &line.Quantity, &line.CreatedAt,
			&line.Product.ID, &line.Product.Name, &line.Product.Description, &line.Product.PriceCents,
			&line.Product.Stock, &line.Product.Category, &line.Product.ImageURL, &line.Product.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("cart repo: line rows cart_id=%s error=%v", cart.ID, err)
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	// Atomic upsert-with-increment: concurrent adds for the same line both
	// land, never a duplicate row or a lost update.
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	return r.retry(ctx, "add item", func() error {
		_, err := r.pool.Exec(ctx, q, cartID, productID, quantity)
		return err
	})
}

func (r *postgresRepo) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, cartID, productID)
	}
	const q = `
INSERT INTO cart_items (cart_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, product_id) DO UPDATE
SET quantity = EXCLUDED.quantity
`
	return r.retry(ctx, "set item quantity", func() error {
		_, err := r.pool.Exec(ctx, q, cartID, productID, quantity)
		return err
	})
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	const q = `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`
	return r.retry(ctx, "remove item", func() error {
		_, err := r.pool.Exec(ctx, q, cartID, productID)
		return err
	})
}

// retry re-runs fn on serialization failures and deadlocks, a bounded number
// of times. Exhaustion surfaces as domain.ErrConflict so callers can ask the
// client to retry. FK violations map to domain.ErrNotFound: the referenced
// product or cart is gone.
func (r *postgresRepo) retry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "40001", "40P01":
				r.logger.Printf("cart repo: %s attempt=%d retryable error=%v", op, attempt, err)
				continue
			case "23503":
				return domain.ErrNotFound
			}
		}
		return err
	}
	r.logger.Printf("cart repo: %s retries exhausted error=%v", op, err)
	return fmt.Errorf("%s: %w", op, domain.ErrConflict)
}
