package services

import (
	"encoding/json"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/models"
)

// CartService, oturumdaki sepet üzerinde işlem yapar.
// Sepet oturuma aittir ve oturum kilidi altında çağrılır; burada ayrıca kilit yoktur.
type CartService struct{}

// NewCartService, yeni bir CartService örneği oluşturur
func NewCartService() *CartService {
	return &CartService{}
}

// NormalizeQuantity, miktarı aşağı yuvarlar ve en az 1 yapar
func NormalizeQuantity(q float64) int {
	if math.IsNaN(q) || q < 1 {
		return 1
	}
	if q > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Floor(q))
}

// AddToCart, sepete ürün ekler. Ürün zaten sepetteyse miktarı artırılır.
func (cs *CartService) AddToCart(cart *models.Cart, product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i, item := range cart.Items {
		if item.ProductID == product.ID {
			logger.Log.Debug("CartService.AddToCart - Product already in cart",
				zap.Int("product_id", product.ID),
				zap.Int("from", item.Quantity),
				zap.Int("to", item.Quantity+quantity))
			cart.Items[i].Quantity += quantity
			cart.Items[i].TotalPrice = cart.Items[i].Price.Mul(decimal.NewFromInt(int64(cart.Items[i].Quantity)))
			cs.updateCartTotals(cart)
			return
		}
	}

	cart.Items = append(cart.Items, models.CartItem{
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price,
		Image:      product.Image,
		Quantity:   quantity,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	})
	cs.updateCartTotals(cart)
	logger.Log.Debug("CartService.AddToCart - Added new product",
		zap.Int("product_id", product.ID),
		zap.Int("total_items", cart.TotalItems),
		zap.String("total_price", cart.TotalPrice.StringFixed(2)))
}

// RemoveFromCart, verilen ürün ID'sine sahip tüm satırları siler ve silinen satır sayısını döndürür
func (cs *CartService) RemoveFromCart(cart *models.Cart, productID int) int {
	kept := cart.Items[:0]
	removed := 0
	for _, item := range cart.Items {
		if item.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	cart.Items = kept
	cs.updateCartTotals(cart)
	return removed
}

// ClearCart, sepeti temizler
func (cs *CartService) ClearCart(cart *models.Cart) {
	cart.Items = []models.CartItem{}
	cs.updateCartTotals(cart)
}

// Total, birim fiyat x miktar toplamını hesaplar
func (cs *CartService) Total(cart *models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// GetCartCount, sepetteki toplam ürün adedini döndürür
func (cs *CartService) GetCartCount(cart *models.Cart) int {
	count := 0
	for _, item := range cart.Items {
		count += item.Quantity
	}
	return count
}

// GetCartJSON, sepeti JSON formatında döndürür
func (cs *CartService) GetCartJSON(cart *models.Cart) (string, error) {
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}
	return string(cartJSON), nil
}

// updateCartTotals, sepet toplamlarını günceller
func (cs *CartService) updateCartTotals(cart *models.Cart) {
	cart.TotalItems = cs.GetCartCount(cart)
	cart.TotalPrice = cs.Total(cart)
	cart.UpdatedAt = time.Now()
}
