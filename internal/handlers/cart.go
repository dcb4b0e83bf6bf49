package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/services"
	"rooftopgarden/internal/session"
)

// cartRequest, sepet uçlarının form veya JSON gövdesi
type cartRequest struct {
	ProductID int     `form:"product_id" json:"product_id" binding:"required"`
	Quantity  float64 `form:"quantity" json:"quantity"`
}

// CartPage, sepet satırlarını, ara toplamları ve genel toplamı gösterir
func (h *Handler) CartPage(c *gin.Context) {
	cart := session.From(c).Cart
	if wantsJSON(c) {
		body, err := h.cartService.GetCartJSON(cart)
		if err != nil {
			logger.Error(c, "Handler.CartPage - cart encode failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": apperrors.UserMessage(err)})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
		return
	}
	h.render(c, http.StatusOK, "cart.html", "Cart", gin.H{"cart": cart})
}

// AddToCart, ürünü sepete ekler. Aynı ürün tekrar eklenirse miktar artırılır.
func (h *Handler) AddToCart(c *gin.Context) {
	s := session.From(c)

	var req cartRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err), "/products")
		return
	}

	product, err := h.catalog.GetProductByID(req.ProductID)
	if err != nil {
		logger.Warn(c, "Handler.AddToCart - product not found", zap.Int("product_id", req.ProductID))
		h.respondError(c, apperrors.New(http.StatusNotFound, "Product not found.", err), "/products")
		return
	}

	quantity := services.NormalizeQuantity(req.Quantity)
	h.cartService.AddToCart(s.Cart, *product, quantity)
	h.metrics.CartAdds.Inc()

	h.respondOK(c, product.Name+" added to cart.", "/cart", gin.H{
		"count": h.cartService.GetCartCount(s.Cart),
	})
}

// RemoveFromCart, ürüne ait tüm satırları sepetten çıkarır
func (h *Handler) RemoveFromCart(c *gin.Context) {
	s := session.From(c)

	var req cartRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err), "/cart")
		return
	}

	if removed := h.cartService.RemoveFromCart(s.Cart, req.ProductID); removed == 0 {
		h.respondError(c, apperrors.New(http.StatusNotFound, "Product is not in your cart.", nil), "/cart")
		return
	}

	h.respondOK(c, "Product removed from cart.", "/cart", gin.H{
		"count": h.cartService.GetCartCount(s.Cart),
		"total": h.cartService.Total(s.Cart).StringFixed(2),
	})
}

// GetCartCount, sepetteki toplam ürün adedini döndürür
func (h *Handler) GetCartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.cartService.GetCartCount(session.From(c).Cart)})
}
