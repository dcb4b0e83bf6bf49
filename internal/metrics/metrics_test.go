package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCollector_Middleware(t *testing.T) {
	c := NewCollector("test")
	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/forum/:index", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	for _, path := range []string{"/forum/1", "/forum/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/forum/:index", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("test")
	c.OrdersPlaced.Inc()
	c.AssistantCall.WithLabelValues("ask", Outcome(nil)).Inc()
	c.AssistantCall.WithLabelValues("ask", Outcome(errors.New("x"))).Inc()
	c.RegisterSessionGauge("test", func() int { return 3 })

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "test_orders_placed_total 1")
	assert.Contains(t, body, `test_assistant_requests_total{kind="ask",outcome="error"} 1`)
	assert.Contains(t, body, "test_active_sessions 3")
	assert.Contains(t, body, "go_goroutines")
}

func TestCollectors_AreIndependent(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")
	a.ForumPosts.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ForumPosts))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ForumPosts))
}
