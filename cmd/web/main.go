package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rooftopgarden/internal/config"
	"rooftopgarden/internal/database"
	"rooftopgarden/internal/handlers"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/metrics"
	"rooftopgarden/internal/middleware"
	"rooftopgarden/internal/services"
	"rooftopgarden/internal/session"
	"rooftopgarden/web"
)

func main() {
	ctx := context.Background()
	cfg := config.Load(ctx)

	logger.Initialize(cfg.Env)
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	catalog, err := database.NewCatalogStore(cfg.CatalogFile)
	if err != nil {
		logger.Log.Fatal("Catalog could not be loaded", zap.Error(err))
	}

	opts := handlers.Options{
		Catalog:       catalog,
		Assistant:     services.NewAssistantService(cfg.GeminiAPIKey, cfg.GeminiModel),
		Mailer:        services.NewEmailService(services.SMTPSettings{Host: cfg.SMTPHost, Port: cfg.SMTPPort, User: cfg.SMTPUser, Pass: cfg.SMTPPass, AdminEmail: cfg.AdminEmail}),
		Sessions:      session.NewStore(cfg.SessionIdleTTL),
		Metrics:       metrics.NewCollector("rooftopgarden"),
		Security:      services.NewSecurityLogger(),
		SecureCookies: cfg.TLSEnabled(),
	}

	// Supabase bilgileri yoksa kayıt, sipariş ve iletişim devre dışı kalır
	if cfg.BackendEnabled() {
		backend, err := database.NewSupabaseBackend(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			logger.Log.Fatal("Supabase client could not be created", zap.Error(err))
		}
		opts.Backend = backend
		opts.Auth = services.NewBackendAuthenticator(backend)
	} else {
		logger.Log.Warn("Backend not configured, registration, checkout and contact are disabled")
		auth, err := services.NewLocalAuthenticator(cfg.LocalUsers, cfg.LocalPassword)
		if err != nil {
			logger.Log.Fatal("Local accounts could not be set up", zap.Error(err))
		}
		opts.Auth = auth
	}
	if cfg.GeminiAPIKey == "" {
		logger.Log.Warn("GEMINI_API_KEY not set, users must enter a key on the chatbot page")
	}
	opts.Metrics.RegisterSessionGauge("rooftopgarden", opts.Sessions.Len)

	renderer, err := handlers.NewHTMLRenderer(web.Templates, "templates")
	if err != nil {
		logger.Log.Fatal("Templates could not be parsed", zap.Error(err))
	}
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		logger.Log.Fatal("Static files could not be mounted", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(opts.Metrics.Middleware())

	// Proxy güvenlik ayarları
	if err := r.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		logger.Log.Fatal("Trusted proxies could not be set", zap.Error(err))
	}

	r.HTMLRender = renderer
	r.StaticFS("/static", http.FS(static))
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	h := handlers.NewHandler(opts)
	h.RegisterRoutes(r, middleware.NewRateLimiter(cfg.RateLimitPerMinute, 5*time.Minute, opts.Security))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server starting", zap.String("port", cfg.Port), zap.Bool("tls", cfg.TLSEnabled()))
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Log.Info("Server exited")
}
