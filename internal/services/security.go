package services

import (
	"strings"

	"go.uber.org/zap"

	"rooftopgarden/internal/logger"
)

// SecurityLogger, güvenlik olaylarını ayrı bir zap logger'ına yazar
type SecurityLogger struct {
	log *zap.Logger
}

// NewSecurityLogger, yeni bir güvenlik logger'ı oluşturur
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{log: logger.Log.Named("security")}
}

// LogSecurityEvent, güvenlik olayını loglar
func (sl *SecurityLogger) LogSecurityEvent(eventType, details, ipAddress string) {
	if sl == nil || sl.log == nil {
		return
	}
	sl.log.Warn(eventType,
		zap.String("details", details),
		zap.String("ip", ipAddress),
	)
}

// SpamDetector, spam içerik tespiti yapar
type SpamDetector struct {
	spamWords []string
}

// NewSpamDetector, yeni bir spam detector oluşturur
func NewSpamDetector() *SpamDetector {
	return &SpamDetector{
		spamWords: []string{
			"bitcoin", "btc", "crypto", "wallet", "deposit", "withdraw",
			"investment", "profit", "earn money", "make money", "get rich",
			"quick money", "limited time", "exclusive offer",
			"free money", "lottery", "nigerian prince", "inheritance",
			"account suspended", "security alert", "bank transfer",
			"western union", "moneygram", "bank account", "credit card", "ssn",
			"social security", "redeem", "casino",
		},
	}
}

// IsSpam, mesajın spam olup olmadığını kontrol eder
func (sd *SpamDetector) IsSpam(message string) bool {
	messageLower := strings.ToLower(message)
	for _, word := range sd.spamWords {
		if strings.Contains(messageLower, word) {
			return true
		}
	}
	return false
}
