package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/metrics"
	"rooftopgarden/internal/models"
	"rooftopgarden/internal/session"
)

// ContactPage, iletişim formunu gösterir
func (h *Handler) ContactPage(c *gin.Context) {
	status := http.StatusOK
	if !h.backendEnabled() {
		status = http.StatusServiceUnavailable
	}
	h.render(c, status, "contact.html", "Contact", gin.H{
		"form": models.ContactMessage{Email: session.From(c).Email},
	})
}

// HandleContact, iletişim mesajını contact_messages tablosuna yazar ve yöneticiye bildirir
func (h *Handler) HandleContact(c *gin.Context) {
	var msg models.ContactMessage
	bindErr := c.ShouldBind(&msg)

	if !h.backendEnabled() {
		h.contactFailed(c, apperrors.ErrBackendDisabled, msg)
		return
	}
	if bindErr != nil {
		h.contactFailed(c, bindError(bindErr), msg)
		return
	}
	if h.spam.IsSpam(msg.Message) {
		h.security.LogSecurityEvent("SPAM_DETECTED", "/contact", c.ClientIP())
		h.contactFailed(c, apperrors.ErrSpam, msg)
		return
	}

	created, err := h.backend.InsertContactMessage(&msg)
	if err != nil {
		h.logBackendFailure(c, "InsertContactMessage", err, zap.String("email", msg.Email))
		h.contactFailed(c, err, msg)
		return
	}
	h.metrics.BackendCalls.WithLabelValues("InsertContactMessage", metrics.OutcomeOK).Inc()

	if err := h.mailer.SendContactNotification(created); err != nil {
		logger.Warn(c, "Handler.HandleContact - notification email failed", zap.Error(err))
	}

	h.respondOK(c, "Thank you! Your message has been sent.", "/contact", gin.H{"id": created.ID})
}

func (h *Handler) contactFailed(c *gin.Context, err error, msg models.ContactMessage) {
	if wantsJSON(c) {
		c.JSON(apperrors.StatusCode(err), gin.H{"success": false, "error": apperrors.UserMessage(err)})
		return
	}
	data := gin.H{"form": msg}
	if !errors.Is(err, apperrors.ErrBackendDisabled) {
		data["error"] = apperrors.UserMessage(err)
	}
	h.render(c, apperrors.StatusCode(err), "contact.html", "Contact", data)
}
