package seed

import (
	"context"
	"fmt"
	"log"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts the demo catalog for manual testing. Idempotent: products are
// upserted by name.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	repo := productrepo.NewPostgres(pool, logger)
	for _, p := range catalog {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
	}
	return nil
}

var catalog = []domain.Product{
	{
		Name:        "Wireless Headphones",
		Description: "High-quality wireless headphones with noise cancellation and 30-hour battery life",
		PriceCents:  9999,
		Category:    "Electronics",
		Stock:       50,
		ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&q=80",
	},
	{
		Name:        "Gaming Keyboard",
		Description: "Mechanical gaming keyboard with RGB lighting and custom switches",
		PriceCents:  14999,
		Category:    "Electronics",
		Stock:       30,
		ImageURL:    "https://images.unsplash.com/photo-1587829191301-dc798b83add3?w=500&q=80",
	},
	{
		Name:        "USB-C Cable",
		Description: "Fast charging USB-C cable with braided nylon design",
		PriceCents:  1999,
		Category:    "Accessories",
		Stock:       100,
		ImageURL:    "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=500&q=80",
	},
	{
		Name:        "Laptop Stand",
		Description: "Adjustable aluminum laptop stand for better ergonomics",
		PriceCents:  4999,
		Category:    "Accessories",
		Stock:       40,
		ImageURL:    "https://images.unsplash.com/photo-1559056199-641a0ac8b3f4?w=500&q=80",
	},
	{
		Name:        "Webcam HD",
		Description: "1080p HD webcam with built-in microphone for video calls",
		PriceCents:  7999,
		Category:    "Electronics",
		Stock:       25,
		ImageURL:    "https://images.unsplash.com/photo-1598327105666-5b89351aff97?w=500&q=80",
	},
	{
		Name:        "Mechanical Mouse",
		Description: "Precision gaming mouse with adjustable DPI settings",
		PriceCents:  5999,
		Category:    "Accessories",
		Stock:       35,
		ImageURL:    "https://images.unsplash.com/photo-1527814050087-3793815479db?w=500&q=80",
	},
	{
		Name:        "Monitor Stand",
		Description: "Dual monitor stand with storage drawer",
		PriceCents:  8999,
		Category:    "Accessories",
		Stock:       20,
		ImageURL:    "https://images.unsplash.com/photo-1572365992253-3cb3e56dd362?w=500&q=80",
	},
	{
		Name:        "Phone Case",
		Description: "Durable protective phone case with shock absorption",
		PriceCents:  2999,
		Category:    "Accessories",
		Stock:       75,
		ImageURL:    "https://images.unsplash.com/photo-1601528212624-540f08a0f21f?w=500&q=80",
	},
	{
		Name:        "Desk Lamp",
		Description: "LED desk lamp with adjustable brightness and color temperature",
		PriceCents:  3999,
		Category:    "Electronics",
		Stock:       45,
		ImageURL:    "https://images.unsplash.com/photo-1565636192335-14c46fa1120d?w=500&q=80",
	},
	{
		Name:        "USB Hub",
		Description: "7-port USB 3.0 hub with fast data transfer",
		PriceCents:  3499,
		Category:    "Accessories",
		Stock:       50,
		ImageURL:    "https://images.unsplash.com/photo-1597872200969-2b65d56bd16b?w=500&q=80",
	},
	{
		Name:        "Screen Protector",
		Description: "Tempered glass screen protector for all phones",
		PriceCents:  1299,
		Category:    "Accessories",
		Stock:       150,
		ImageURL:    "https://images.unsplash.com/photo-1592890288564-76628a30a657?w=500&q=80",
	},
	{
		Name:        "Bluetooth Speaker",
		Description: "Portable bluetooth speaker with deep bass and 12-hour playtime",
		PriceCents:  6999,
		Category:    "Electronics",
		Stock:       60,
		ImageURL:    "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500&q=80",
	},
}
