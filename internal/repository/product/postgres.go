package product

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
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

const productColumns = `id::text, name, description, price_cents, stock, category, image_url, created_at`

func (r *postgresRepo) Search(ctx context.Context, q SearchQuery) ([]domain.Product, error) {
	// Tie-break on id so pagination stays stable when creation times collide.
	const query = `
SELECT ` + productColumns + `
FROM products
WHERE $1 = '' OR name ILIKE $2 OR description ILIKE $2
ORDER BY created_at DESC, id ASC
LIMIT $3 OFFSET $4
`
	rows, err := r.pool.Query(ctx, query, q.Text, likePattern(q.Text), q.Limit, q.Offset)
	if err != nil {
		r.logger.Printf("product repo: search text=%q error=%v", q.Text, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.Category, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: search rows text=%q error=%v", q.Text, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) CountSearch(ctx context.Context, text string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM products
WHERE $1 = '' OR name ILIKE $2 OR description ILIKE $2
`
	var count int
	if err := r.pool.QueryRow(ctx, query, text, likePattern(text)).Scan(&count); err != nil {
		r.logger.Printf("product repo: count text=%q error=%v", text, err)
		return 0, err
	}
	return count, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.Category, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const query = `
INSERT INTO products (name, description, price_cents, stock, category, image_url)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name) DO UPDATE SET
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock,
    category = EXCLUDED.category,
    image_url = EXCLUDED.image_url
RETURNING ` + productColumns + `
`
	var res domain.Product
	err := r.pool.QueryRow(ctx, query, p.Name, p.Description, p.PriceCents, p.Stock, p.Category, p.ImageURL).Scan(
		&res.ID, &res.Name, &res.Description, &res.PriceCents, &res.Stock, &res.Category, &res.ImageURL, &res.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%q error=%v", p.Name, err)
		return nil, err
	}
	return &res, nil
}

// likePattern escapes LIKE metacharacters so user input matches literally.
func likePattern(text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(text)
	return "%" + escaped + "%"
}
