package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/database"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/metrics"
	"rooftopgarden/internal/models"
	"rooftopgarden/internal/services"
	"rooftopgarden/internal/session"
)

// Catalog, ürün ve hazır soru verilerinin okunduğu kaynak
type Catalog interface {
	GetProductByID(id int) (*models.Product, error)
	Categories() []string
	ProductsByCategory(category string) []models.Product
	PromptCategories() []models.PromptCategory
}

// Assistant, chatbot ve ses çözümleme servisi
type Assistant interface {
	HasDefaultKey() bool
	Ask(ctx context.Context, sessionKey, prompt string) (string, error)
	Transcribe(ctx context.Context, sessionKey string, audio services.Audio) (string, error)
}

// Mailer, sipariş ve iletişim bildirimlerini gönderir
type Mailer interface {
	SendOrderConfirmation(order *models.Order) error
	SendContactNotification(msg *models.ContactMessage) error
}

// Options, Handler'ın bağımlılıkları. Backend nil ise kayıt, sipariş ve iletişim devre dışıdır.
type Options struct {
	Catalog       Catalog
	Backend       database.Backend
	Auth          services.Authenticator
	Assistant     Assistant
	Mailer        Mailer
	Sessions      *session.Store
	Metrics       *metrics.Collector
	Security      *services.SecurityLogger
	SecureCookies bool
}

// Handler, HTTP isteklerini yönetir.
type Handler struct {
	catalog   Catalog
	backend   database.Backend
	auth      services.Authenticator
	assistant Assistant
	mailer    Mailer
	sessions  *session.Store
	metrics   *metrics.Collector
	security  *services.SecurityLogger

	cartService  *services.CartService
	forumService *services.ForumService
	spam         *services.SpamDetector

	secureCookies bool
	now           func() time.Time
}

// NewHandler, yeni bir Handler örneği oluşturur.
func NewHandler(opts Options) *Handler {
	registerValidators()
	spam := services.NewSpamDetector()
	return &Handler{
		catalog:       opts.Catalog,
		backend:       opts.Backend,
		auth:          opts.Auth,
		assistant:     opts.Assistant,
		mailer:        opts.Mailer,
		sessions:      opts.Sessions,
		metrics:       opts.Metrics,
		security:      opts.Security,
		cartService:   services.NewCartService(),
		forumService:  services.NewForumService(spam),
		spam:          spam,
		secureCookies: opts.SecureCookies,
		now:           time.Now,
	}
}

func (h *Handler) backendEnabled() bool {
	return h.backend != nil
}

// render, oturumdan gelen ortak verileri ekleyerek sayfayı çizer
func (h *Handler) render(c *gin.Context, status int, page, title string, data gin.H) {
	s := session.From(c)
	base := gin.H{
		"title":          title,
		"currentPath":    c.Request.URL.Path,
		"isLoggedIn":     false,
		"username":       "",
		"cartCount":      0,
		"flashes":        []session.Flash(nil),
		"backendEnabled": h.backendEnabled(),
		"error":          "",
	}
	if s != nil {
		base["isLoggedIn"] = s.LoggedIn
		base["username"] = s.Username
		base["cartCount"] = h.cartService.GetCartCount(s.Cart)
		base["flashes"] = s.PopFlashes()
	}
	for k, v := range data {
		base[k] = v
	}
	c.HTML(status, page, base)
}

// wantsJSON reports whether the client sent or expects JSON.
func wantsJSON(c *gin.Context) bool {
	if c.ContentType() == binding.MIMEJSON {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), binding.MIMEJSON)
}

// respondError, JSON isteklerine hata gövdesi döndürür; form isteklerinde flash ekleyip yönlendirir
func (h *Handler) respondError(c *gin.Context, err error, redirect string) {
	if wantsJSON(c) {
		c.JSON(apperrors.StatusCode(err), gin.H{"success": false, "error": apperrors.UserMessage(err)})
		return
	}
	if s := session.From(c); s != nil {
		s.AddFlash(flashKind(err), apperrors.UserMessage(err))
	}
	c.Redirect(http.StatusSeeOther, redirect)
}

// respondOK, JSON isteklerine başarı gövdesi döndürür; form isteklerinde flash ekleyip yönlendirir
func (h *Handler) respondOK(c *gin.Context, message, redirect string, extra gin.H) {
	if wantsJSON(c) {
		body := gin.H{"success": true, "message": message}
		for k, v := range extra {
			body[k] = v
		}
		c.JSON(http.StatusOK, body)
		return
	}
	if s := session.From(c); s != nil {
		s.AddFlash(session.FlashSuccess, message)
	}
	c.Redirect(http.StatusSeeOther, redirect)
}

// flashKind, kullanıcı hatalarını uyarı, dış servis hatalarını hata olarak gösterir
func flashKind(err error) string {
	if apperrors.StatusCode(err) >= http.StatusInternalServerError {
		return session.FlashError
	}
	return session.FlashWarning
}

// NotFound, bilinmeyen adresler için hata sayfasını çizer
func (h *Handler) NotFound(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": apperrors.ErrNotFound.Message})
		return
	}
	h.render(c, http.StatusNotFound, "error.html", "Not Found", gin.H{
		"status":  http.StatusNotFound,
		"message": "The page you are looking for does not exist.",
	})
}

// Healthz, servis durumunu döndürür
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) logBackendFailure(c *gin.Context, op string, err error, fields ...zap.Field) {
	h.metrics.BackendCalls.WithLabelValues(op, metrics.OutcomeError).Inc()
	if errors.Is(err, apperrors.ErrBackendDisabled) {
		return
	}
	logger.Error(c, "Handler."+op+" - backend call failed", err, fields...)
}

func generateOrderNumber() string {
	return "RG-" + strings.ToUpper(uuid.New().String()[:8])
}
