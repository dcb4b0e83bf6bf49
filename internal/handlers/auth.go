package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/metrics"
	"rooftopgarden/internal/models"
	"rooftopgarden/internal/session"
)

// HandleLogin, kullanıcı girişini yönetir. Başarılı girişte iki hatırlatıcı da şimdi başlar.
func (h *Handler) HandleLogin(c *gin.Context) {
	s := session.From(c)

	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.metrics.Logins.WithLabelValues(metrics.OutcomeRejected).Inc()
		h.respondError(c, bindError(err), "/")
		return
	}

	user, err := h.auth.Authenticate(form.Username, form.Password)
	if err != nil {
		h.metrics.Logins.WithLabelValues(metrics.OutcomeRejected).Inc()
		h.security.LogSecurityEvent("LOGIN_FAILED", form.Username, c.ClientIP())
		h.respondError(c, err, "/")
		return
	}

	s.Login(user, h.now())
	newID := h.sessions.Rotate(s)
	session.SetCookie(c, newID, h.secureCookies)
	h.metrics.Logins.WithLabelValues(metrics.OutcomeOK).Inc()
	logger.Info(c, "Handler.HandleLogin - login successful", zap.String("username", user.Username))

	h.respondOK(c, "Welcome, "+user.Username+"!", "/", gin.H{"username": user.Username})
}

// UserLogout, giriş bilgilerini ve hatırlatıcıları temizler; sepet ve forum korunur
func (h *Handler) UserLogout(c *gin.Context) {
	s := session.From(c)
	if s.LoggedIn {
		logger.Info(c, "Handler.UserLogout - logout", zap.String("username", s.Username))
	}
	s.Logout()
	s.AddFlash(session.FlashInfo, "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/")
}

// RegisterPage, kayıt formunu gösterir
func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", "Register", gin.H{"email": ""})
}

// HandleRegister, backend üzerinden yeni hesap oluşturur
func (h *Handler) HandleRegister(c *gin.Context) {
	if !h.backendEnabled() {
		h.render(c, http.StatusServiceUnavailable, "register.html", "Register", gin.H{"email": ""})
		return
	}

	var form models.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderRegisterError(c, bindError(err), form.Email)
		return
	}

	if _, err := h.backend.SignUp(form.Email, form.Password); err != nil {
		h.logBackendFailure(c, "SignUp", err, zap.String("email", form.Email))
		h.renderRegisterError(c, err, form.Email)
		return
	}
	h.metrics.BackendCalls.WithLabelValues("SignUp", metrics.OutcomeOK).Inc()

	session.From(c).AddFlash(session.FlashSuccess,
		"Registration successful. Please confirm your email address, then log in.")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) renderRegisterError(c *gin.Context, err error, email string) {
	h.render(c, apperrors.StatusCode(err), "register.html", "Register", gin.H{
		"email": email,
		"error": apperrors.UserMessage(err),
	})
}
