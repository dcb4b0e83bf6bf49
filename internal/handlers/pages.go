package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rooftopgarden/internal/reminder"
	"rooftopgarden/internal/session"
)

// HomePage, tanıtım metni, hatırlatıcılar ve giriş formunu gösterir
func (h *Handler) HomePage(c *gin.Context) {
	s := session.From(c)
	h.render(c, http.StatusOK, "home.html", "Home", gin.H{
		"reminders": reminder.Snapshot(s.WaterStart, s.FertilizerStart, h.now()),
	})
}

// GuidePage, başlangıç rehberini gösterir
func (h *Handler) GuidePage(c *gin.Context) {
	h.render(c, http.StatusOK, "guide.html", "Guide", nil)
}

// PromptsPage, hazır soru kategorilerini listeler
func (h *Handler) PromptsPage(c *gin.Context) {
	h.render(c, http.StatusOK, "prompts.html", "Prompts", gin.H{
		"categories": h.catalog.PromptCategories(),
	})
}

// ProductsPage, ürünleri isteğe bağlı kategori filtresiyle listeler
func (h *Handler) ProductsPage(c *gin.Context) {
	category := c.Query("category")
	h.render(c, http.StatusOK, "products.html", "Shop", gin.H{
		"products":         h.catalog.ProductsByCategory(category),
		"categories":       h.catalog.Categories(),
		"selectedCategory": category,
	})
}

// RemindersAPI, hatırlatıcıların anlık durumunu JSON olarak döndürür
func (h *Handler) RemindersAPI(c *gin.Context) {
	s := session.From(c)
	c.JSON(http.StatusOK, gin.H{
		"logged_in": s.LoggedIn,
		"reminders": reminder.Snapshot(s.WaterStart, s.FertilizerStart, h.now()),
	})
}
