package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"rooftopgarden/internal/database"
	"rooftopgarden/internal/metrics"
	"rooftopgarden/internal/middleware"
	"rooftopgarden/internal/models"
	"rooftopgarden/internal/services"
	"rooftopgarden/internal/session"
	"rooftopgarden/web"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2024, 5, 1, 6, 30, 0, 0, time.UTC)

// mockBackend, Backend arayüzünü fonksiyon alanlarıyla taklit eder
type mockBackend struct {
	SignInFunc               func(email, password string) (*models.User, error)
	SignUpFunc               func(email, password string) (*models.User, error)
	InsertContactMessageFunc func(msg *models.ContactMessage) (*models.ContactMessage, error)
	InsertOrderFunc          func(order *models.Order) (*models.Order, error)
	InsertOrderItemsFunc     func(items []models.OrderItem) ([]models.OrderItem, error)

	orders []models.Order
	items  []models.OrderItem
}

func (m *mockBackend) SignIn(email, password string) (*models.User, error) {
	return m.SignInFunc(email, password)
}

func (m *mockBackend) SignUp(email, password string) (*models.User, error) {
	return m.SignUpFunc(email, password)
}

func (m *mockBackend) InsertContactMessage(msg *models.ContactMessage) (*models.ContactMessage, error) {
	return m.InsertContactMessageFunc(msg)
}

func (m *mockBackend) InsertOrder(order *models.Order) (*models.Order, error) {
	if m.InsertOrderFunc != nil {
		return m.InsertOrderFunc(order)
	}
	created := *order
	created.ID = int64(len(m.orders) + 1)
	m.orders = append(m.orders, created)
	return &created, nil
}

func (m *mockBackend) InsertOrderItems(items []models.OrderItem) ([]models.OrderItem, error) {
	if m.InsertOrderItemsFunc != nil {
		return m.InsertOrderItemsFunc(items)
	}
	for i := range items {
		items[i].ID = int64(len(m.items) + 1)
		m.items = append(m.items, items[i])
	}
	return items, nil
}

type mockAssistant struct {
	hasKey         bool
	AskFunc        func(ctx context.Context, sessionKey, prompt string) (string, error)
	TranscribeFunc func(ctx context.Context, sessionKey string, audio services.Audio) (string, error)

	asked []string
}

func (m *mockAssistant) HasDefaultKey() bool { return m.hasKey }

func (m *mockAssistant) Ask(ctx context.Context, sessionKey, prompt string) (string, error) {
	m.asked = append(m.asked, prompt)
	return m.AskFunc(ctx, sessionKey, prompt)
}

func (m *mockAssistant) Transcribe(ctx context.Context, sessionKey string, audio services.Audio) (string, error) {
	return m.TranscribeFunc(ctx, sessionKey, audio)
}

type mockMailer struct {
	orders   []*models.Order
	contacts []*models.ContactMessage
}

func (m *mockMailer) SendOrderConfirmation(order *models.Order) error {
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockMailer) SendContactNotification(msg *models.ContactMessage) error {
	m.contacts = append(m.contacts, msg)
	return nil
}

type testApp struct {
	t         *testing.T
	router    *gin.Engine
	handler   *Handler
	store     *session.Store
	assistant *mockAssistant
	mailer    *mockMailer
	metrics   *metrics.Collector
	cookie    *http.Cookie
}

type appOption func(*Options, **middleware.RateLimiter)

func withBackend(b database.Backend) appOption {
	return func(o *Options, _ **middleware.RateLimiter) {
		o.Backend = b
		o.Auth = services.NewBackendAuthenticator(b)
	}
}

func withLimiter(rl *middleware.RateLimiter) appOption {
	return func(_ *Options, l **middleware.RateLimiter) { *l = rl }
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()

	catalog, err := database.NewCatalogStore("")
	require.NoError(t, err)
	auth, err := services.NewLocalAuthenticator([]string{"sanketh", "nikhil"}, "rooftop")
	require.NoError(t, err)
	renderer, err := NewHTMLRenderer(web.Templates, "templates")
	require.NoError(t, err)

	assistant := &mockAssistant{hasKey: true}
	mailer := &mockMailer{}
	collector := metrics.NewCollector("test")
	store := session.NewStore(time.Hour)

	o := Options{
		Catalog:   catalog,
		Auth:      auth,
		Assistant: assistant,
		Mailer:    mailer,
		Sessions:  store,
		Metrics:   collector,
		Security:  services.NewSecurityLogger(),
	}
	var limiter *middleware.RateLimiter
	for _, opt := range opts {
		opt(&o, &limiter)
	}

	h := NewHandler(o)
	h.now = func() time.Time { return testNow }

	r := gin.New()
	r.HTMLRender = renderer
	h.RegisterRoutes(r, limiter)

	return &testApp{
		t:         t,
		router:    r,
		handler:   h,
		store:     store,
		assistant: assistant,
		mailer:    mailer,
		metrics:   collector,
	}
}

// do, isteği oturum çerezini taşıyarak gönderir ve yeni çerezi saklar
func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			a.cookie = ck
		}
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	require.NoError(a.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *testApp) postMultipart(path string, fields map[string]string, fileField, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(a.t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(a.t, err)
		_, err = io.Copy(fw, bytes.NewReader(content))
		require.NoError(a.t, err)
	}
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req)
}

// session, çerezdeki oturumu döndürür
func (a *testApp) session() *session.Session {
	a.t.Helper()
	require.NotNil(a.t, a.cookie, "no session cookie yet")
	s, ok := a.store.Get(a.cookie.Value)
	require.True(a.t, ok)
	return s
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
