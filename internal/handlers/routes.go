package handlers

import (
	"github.com/gin-gonic/gin"

	"rooftopgarden/internal/middleware"
	"rooftopgarden/internal/session"
)

// RegisterRoutes, uygulama rotalarını kaydeder. aiLimiter nil ise AI uçları sınırlandırılmaz.
func (h *Handler) RegisterRoutes(r *gin.Engine, aiLimiter *middleware.RateLimiter) {
	r.GET("/healthz", h.Healthz)
	r.NoRoute(session.Middleware(h.sessions, h.secureCookies), h.NotFound)

	app := r.Group("/", session.Middleware(h.sessions, h.secureCookies))

	app.GET("/", h.HomePage)
	app.GET("/guide", h.GuidePage)
	app.GET("/prompts", h.PromptsPage)
	app.GET("/api/reminders", h.RemindersAPI)

	// Kullanıcı girişi
	app.POST("/login", h.HandleLogin)
	app.GET("/logout", h.UserLogout)
	app.GET("/register", h.RegisterPage)
	app.POST("/register", h.HandleRegister)

	// Chatbot
	limited := []gin.HandlerFunc{}
	if aiLimiter != nil {
		limited = append(limited, aiLimiter.Middleware(h.chatbotRateLimited))
	}
	app.GET("/chatbot", h.ChatbotPage)
	app.POST("/chatbot/ask", append(limited, h.HandleAsk)...)
	app.POST("/chatbot/transcribe", append(limited, h.HandleTranscribe)...)
	app.POST("/chatbot/key", h.HandleAPIKey)

	// Forum
	app.GET("/forum", h.ForumPage)
	app.POST("/forum", h.HandlePost)
	app.POST("/forum/:index/toggle", h.HandleToggleReply)
	app.POST("/forum/:index/reply", h.HandleReply)

	// Mağaza ve sepet
	app.GET("/products", h.ProductsPage)
	app.GET("/cart", h.CartPage)
	app.POST("/cart/add", h.AddToCart)
	app.POST("/cart/remove", h.RemoveFromCart)
	app.GET("/cart/count", h.GetCartCount)
	app.GET("/checkout", h.CheckoutPage)
	app.POST("/checkout", h.HandleCheckout)
	app.GET("/order-success", h.OrderSuccessPage)

	// İletişim
	app.GET("/contact", h.ContactPage)
	app.POST("/contact", h.HandleContact)
}
