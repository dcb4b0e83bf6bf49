package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order, backend'deki orders tablosunun satırını temsil eder
type Order struct {
	ID            int64           `json:"id,omitempty"`
	OrderNumber   string          `json:"order_number"`
	Username      string          `json:"username,omitempty"`
	CustomerName  string          `json:"customer_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        string          `json:"status"` // "pending", "confirmed", "shipped", "delivered", "cancelled"
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	Items         []OrderItem     `json:"-"`
}

// OrderItem, order_items tablosunun satırını temsil eder
type OrderItem struct {
	ID         int64           `json:"id,omitempty"`
	OrderID    int64           `json:"order_id"`
	ProductID  int             `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderForm, sipariş formu verilerini temsil eder
type OrderForm struct {
	CustomerName  string `form:"customerName" json:"customer_name" binding:"required,notblank"`
	Email         string `form:"email" json:"email" binding:"required,email"`
	Phone         string `form:"phone" json:"phone" binding:"required,notblank"`
	Address       string `form:"address" json:"address" binding:"required,notblank"`
	PaymentMethod string `form:"paymentMethod" json:"payment_method"`
	Notes         string `form:"notes" json:"notes"`
}

// OrderItemsFromCart, sepet satırlarını sipariş satırlarına çevirir
func OrderItemsFromCart(orderID int64, cart *Cart) []OrderItem {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, OrderItem{
			OrderID:    orderID,
			ProductID:  it.ProductID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			TotalPrice: it.TotalPrice,
		})
	}
	return items
}
