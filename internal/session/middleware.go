package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName, oturum kimliğini taşıyan çerez
const CookieName = "rg_session"

const contextKey = "session"

// Middleware, isteğin oturumunu yükler veya oluşturur ve istek boyunca kilitler.
func Middleware(store *Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(CookieName)
		s, ok := store.Get(id)
		if !ok {
			s = store.Create()
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		// Oturum başka bir istek tarafından döndürülmüş olabilir
		if s.ID != id {
			SetCookie(c, s.ID, secure)
		}
		store.touch(s)

		c.Set(contextKey, s)
		c.Next()
	}
}

// SetCookie writes the session cookie. MaxAge 0 makes it a browser-session cookie.
func SetCookie(c *gin.Context, id string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, 0, "/", "", secure, true)
}

// From, Middleware tarafından yüklenen oturumu döndürür
func From(c *gin.Context) *Session {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
