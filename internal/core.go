package internal

import (
	"fmt"
	"time"
)

// ===== Domain Models =====

// Product is a catalog entry. Stock is the authoritative inventory count.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Image       string `json:"image"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
}

// CartLine is a product snapshot placed in the cart with a chosen quantity.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity. A zero quantity counts as one unit.
func (l CartLine) Subtotal() Money {
	q := l.Quantity
	if q == 0 {
		q = 1
	}
	return l.Product.Price.Mul(int64(q))
}

type Order struct {
	ID       string     `json:"id"`
	Lines    []CartLine `json:"lines"`
	Total    Money      `json:"total"`
	PlacedAt time.Time  `json:"placed_at"`
}

// StockLabel is the availability text shown next to a product.
func StockLabel(stock int) string {
	if stock > 0 {
		return fmt.Sprintf("%d in stock", stock)
	}
	return "out of stock"
}
