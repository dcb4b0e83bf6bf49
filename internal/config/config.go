package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rooftopgarden/internal/logger"
)

// Config, uygulamanın tüm ayarlarını tutar
type Config struct {
	Env  string
	Port string

	GeminiAPIKey string
	GeminiModel  string

	SupabaseURL string
	SupabaseKey string

	SessionIdleTTL time.Duration

	// Backend yoksa kullanılacak demo hesapları
	LocalUsers    []string
	LocalPassword string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	AdminEmail string

	CatalogFile string

	TLSCertFile string
	TLSKeyFile  string

	RateLimitPerMinute int
}

// BackendEnabled reports whether Supabase credentials are present.
func (c Config) BackendEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// TLSEnabled reports whether both certificate and key files are set.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Load, .env dosyasını ve ortam değişkenlerini okur, gizli anahtarları resolver üzerinden çözer
func Load(ctx context.Context) Config {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug(".env file not loaded", zap.Error(err))
	}

	cfg := Config{
		Env:                getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8082"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		SessionIdleTTL:     getDuration("SESSION_IDLE_TTL", 12*time.Hour),
		LocalUsers:         splitList(getEnv("LOCAL_USERS", "sanketh,nikhil,karthik,shiva")),
		LocalPassword:      getEnv("LOCAL_PASSWORD", "rooftop"),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getInt("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		CatalogFile:        os.Getenv("CATALOG_FILE"),
		TLSCertFile:        os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:         os.Getenv("TLS_KEY_FILE"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 20),
	}

	secrets := NewSecretResolver(ctx, getEnv("SECRETS_FILE", ".secrets.yaml"), os.Getenv("AWS_SECRET_ID"))
	cfg.GeminiAPIKey = secrets.Lookup(ctx, "GEMINI_API_KEY")
	cfg.SupabaseURL = secrets.Lookup(ctx, "SUPABASE_URL")
	cfg.SupabaseKey = secrets.Lookup(ctx, "SUPABASE_KEY")

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		logger.Log.Warn("invalid integer setting, using default", zap.String("key", key), zap.String("value", val))
		return defaultVal
	}
	return n
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		logger.Log.Warn("invalid duration setting, using default", zap.String("key", key), zap.String("value", val))
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
