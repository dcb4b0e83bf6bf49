package services

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftopgarden/internal/models"
)

func product(id int, name, price string) models.Product {
	return models.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestNormalizeQuantity(t *testing.T) {
	assert.Equal(t, 1, NormalizeQuantity(0))
	assert.Equal(t, 1, NormalizeQuantity(-3))
	assert.Equal(t, 1, NormalizeQuantity(0.7))
	assert.Equal(t, 2, NormalizeQuantity(2.9))
	assert.Equal(t, 5, NormalizeQuantity(5))
}

func TestAddToCart_MergesSameProduct(t *testing.T) {
	cs := NewCartService()
	cart := models.NewCart()
	p := product(3, "Organic Potting Mix", "14.99")

	cs.AddToCart(cart, p, 2)
	cs.AddToCart(cart, p, 1)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, "44.97", cart.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "44.97", cart.TotalPrice.StringFixed(2))
	assert.Equal(t, 3, cart.TotalItems)
}

func TestAddToCart_QuantityAtLeastOne(t *testing.T) {
	cs := NewCartService()
	cart := models.NewCart()
	cs.AddToCart(cart, product(1, "Trowel", "7.25"), 0)
	cs.AddToCart(cart, product(1, "Trowel", "7.25"), -4)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestTotal(t *testing.T) {
	cs := NewCartService()
	cart := models.NewCart()
	cs.AddToCart(cart, product(1, "Self-Watering Planter", "9.99"), 2)
	cs.AddToCart(cart, product(2, "Seed Starter Kit", "4.50"), 1)

	assert.True(t, decimal.RequireFromString("24.48").Equal(cs.Total(cart)))
	assert.True(t, cart.TotalPrice.Equal(cs.Total(cart)))
	assert.Equal(t, 3, cs.GetCartCount(cart))
}

func TestRemoveFromCart(t *testing.T) {
	cs := NewCartService()
	cart := models.NewCart()
	cs.AddToCart(cart, product(1, "Planter", "9.99"), 2)
	cs.AddToCart(cart, product(2, "Seeds", "4.50"), 1)
	// elle eklenmiş yinelenen satır da silinmeli
	cart.Items = append(cart.Items, models.CartItem{ProductID: 1, Price: decimal.RequireFromString("9.99"), Quantity: 1})

	removed := cs.RemoveFromCart(cart, 1)
	assert.Equal(t, 2, removed)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].ProductID)
	assert.Equal(t, "4.50", cs.Total(cart).StringFixed(2))
	assert.Equal(t, "4.50", cart.TotalPrice.StringFixed(2))

	assert.Equal(t, 0, cs.RemoveFromCart(cart, 99))
	assert.Len(t, cart.Items, 1)
}

func TestClearCart(t *testing.T) {
	cs := NewCartService()
	cart := models.NewCart()
	cs.AddToCart(cart, product(1, "Planter", "9.99"), 2)

	cs.ClearCart(cart)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.TotalItems)
	assert.True(t, cart.TotalPrice.IsZero())
}

func TestGetCartJSON(t *testing.T) {
	cs := NewCartService()
	cart := models.NewCart()
	cs.AddToCart(cart, product(4, "Compost", "3.10"), 1)

	s, err := cs.GetCartJSON(cart)
	require.NoError(t, err)

	var decoded struct {
		Items      []map[string]any `json:"items"`
		TotalItems int              `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal([]byte(s), &decoded))
	assert.Equal(t, 1, decoded.TotalItems)
	assert.Len(t, decoded.Items, 1)
}
