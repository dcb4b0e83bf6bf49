package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart, oturuma ait sepet modelini temsil eder
type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CartItem, sepet satırını temsil eder. Her ürün ID'si için en fazla bir satır bulunur.
type CartItem struct {
	ProductID  int             `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewCart, boş bir sepet oluşturur
func NewCart() *Cart {
	return &Cart{
		Items:      []CartItem{},
		TotalPrice: decimal.Zero,
		UpdatedAt:  time.Now(),
	}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
