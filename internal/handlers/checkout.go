package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/metrics"
	"rooftopgarden/internal/models"
	"rooftopgarden/internal/session"
)

const defaultPaymentMethod = "cash_on_delivery"

// CheckoutPage, sipariş formunu ve sepet özetini gösterir
func (h *Handler) CheckoutPage(c *gin.Context) {
	s := session.From(c)
	if s.Cart.IsEmpty() {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}
	status := http.StatusOK
	if !h.backendEnabled() {
		status = http.StatusServiceUnavailable
	}
	h.render(c, status, "checkout.html", "Checkout", gin.H{
		"cart": s.Cart,
		"form": models.OrderForm{Email: s.Email, CustomerName: s.Username},
	})
}

// HandleCheckout, siparişi ve satırlarını backend'e yazar, ardından sepeti boşaltır.
// Herhangi bir adım başarısız olursa sepet korunur.
func (h *Handler) HandleCheckout(c *gin.Context) {
	s := session.From(c)
	if s.Cart.IsEmpty() {
		h.respondError(c, apperrors.ErrEmptyCart, "/cart")
		return
	}

	var form models.OrderForm
	bindErr := c.ShouldBind(&form)

	if !h.backendEnabled() {
		h.checkoutFailed(c, apperrors.ErrBackendDisabled, form)
		return
	}
	if bindErr != nil {
		h.checkoutFailed(c, bindError(bindErr), form)
		return
	}

	if form.PaymentMethod == "" {
		form.PaymentMethod = defaultPaymentMethod
	}
	order := &models.Order{
		OrderNumber:   generateOrderNumber(),
		Username:      s.Username,
		CustomerName:  form.CustomerName,
		Email:         form.Email,
		Phone:         form.Phone,
		Address:       form.Address,
		TotalPrice:    h.cartService.Total(s.Cart),
		Status:        "pending",
		PaymentMethod: form.PaymentMethod,
		Notes:         form.Notes,
	}

	created, err := h.backend.InsertOrder(order)
	if err != nil {
		h.logBackendFailure(c, "InsertOrder", err, zap.String("order_number", order.OrderNumber))
		h.checkoutFailed(c, err, form)
		return
	}
	h.metrics.BackendCalls.WithLabelValues("InsertOrder", metrics.OutcomeOK).Inc()

	items, err := h.backend.InsertOrderItems(models.OrderItemsFromCart(created.ID, s.Cart))
	if err != nil {
		h.logBackendFailure(c, "InsertOrderItems", err,
			zap.Int64("order_id", created.ID), zap.String("order_number", created.OrderNumber))
		h.checkoutFailed(c, err, form)
		return
	}
	h.metrics.BackendCalls.WithLabelValues("InsertOrderItems", metrics.OutcomeOK).Inc()
	created.Items = items

	logger.Info(c, "Handler.HandleCheckout - order created",
		zap.Int64("order_id", created.ID),
		zap.String("order_number", created.OrderNumber),
		zap.String("total", created.TotalPrice.StringFixed(2)))

	if err := h.mailer.SendOrderConfirmation(created); err != nil {
		logger.Warn(c, "Handler.HandleCheckout - confirmation email failed",
			zap.String("order_number", created.OrderNumber), zap.Error(err))
	}

	h.cartService.ClearCart(s.Cart)
	h.metrics.OrdersPlaced.Inc()

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Order placed.",
			"order_id":     created.ID,
			"order_number": created.OrderNumber,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/order-success?order_number="+url.QueryEscape(created.OrderNumber))
}

func (h *Handler) checkoutFailed(c *gin.Context, err error, form models.OrderForm) {
	if wantsJSON(c) {
		c.JSON(apperrors.StatusCode(err), gin.H{"success": false, "error": apperrors.UserMessage(err)})
		return
	}
	data := gin.H{
		"cart": session.From(c).Cart,
		"form": form,
	}
	// Devre dışı backend uyarısı şablonda zaten gösteriliyor
	if h.backendEnabled() {
		data["error"] = apperrors.UserMessage(err)
	}
	h.render(c, apperrors.StatusCode(err), "checkout.html", "Checkout", data)
}

// OrderSuccessPage, sipariş onayını gösterir
func (h *Handler) OrderSuccessPage(c *gin.Context) {
	orderNumber := c.Query("order_number")
	if orderNumber == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, http.StatusOK, "order_success.html", "Order placed", gin.H{
		"orderNumber": orderNumber,
	})
}
