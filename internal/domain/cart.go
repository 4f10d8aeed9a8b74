package domain

import "time"

// Cart is the per-user aggregate of line items. A user has at most one cart;
// an empty cart has zero lines, it is never represented by a missing row once
// created.
type Cart struct {
	ID        string     `json:"id,omitempty"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt,omitzero"`
	Lines     []CartLine `json:"items"`
}

// CartLine pairs one product with a quantity. Quantity is strictly positive
// while the line exists; quantity zero means the line is deleted.
type CartLine struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cartId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Product   Product   `json:"product"`
	CreatedAt time.Time `json:"createdAt"`
}

// TotalCents sums price * quantity over all lines using the product price
// joined at read time, so the total always reflects current catalog pricing.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Product.PriceCents * int64(line.Quantity)
	}
	return total
}

// LineCount is the number of distinct products, not the sum of quantities.
func (c *Cart) LineCount() int {
	return len(c.Lines)
}
