package services

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/models"
)

// Authenticator, kullanıcı adı ve parolayı doğrular
type Authenticator interface {
	Authenticate(username, password string) (*models.User, error)
}

// LocalAuthenticator, backend yokken sabit demo hesaplarıyla giriş sağlar.
// Tüm hesaplar aynı parolayı kullanır; parola yalnızca bcrypt hash'i olarak tutulur.
type LocalAuthenticator struct {
	users        map[string]bool
	passwordHash []byte
}

// NewLocalAuthenticator, demo hesaplar için bir LocalAuthenticator oluşturur
func NewLocalAuthenticator(users []string, password string) (*LocalAuthenticator, error) {
	if password == "" {
		return nil, errors.New("local password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash local password: %w", err)
	}
	set := make(map[string]bool, len(users))
	for _, u := range users {
		if u = strings.TrimSpace(u); u != "" {
			set[u] = true
		}
	}
	return &LocalAuthenticator{users: set, passwordHash: hash}, nil
}

// Authenticate, kullanıcı adının listede olup olmadığını ve parolanın eşleşip eşleşmediğini kontrol eder
func (a *LocalAuthenticator) Authenticate(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if !a.users[username] {
		logger.Log.Info("LocalAuthenticator.Authenticate - unknown user", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		logger.Log.Info("LocalAuthenticator.Authenticate - incorrect password", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials
	}
	return &models.User{ID: username, Username: username}, nil
}

// SignInBackend, Authenticate'in kullandığı backend çağrısı
type SignInBackend interface {
	SignIn(email, password string) (*models.User, error)
}

// BackendAuthenticator, girişi barındırılan auth servisine yönlendirir.
// Kullanıcı adı alanı e-posta olarak gönderilir.
type BackendAuthenticator struct {
	backend SignInBackend
}

func NewBackendAuthenticator(backend SignInBackend) *BackendAuthenticator {
	return &BackendAuthenticator{backend: backend}
}

// Authenticate, e-posta ve parolayla backend'de oturum açar
func (a *BackendAuthenticator) Authenticate(username, password string) (*models.User, error) {
	email := strings.TrimSpace(username)
	if email == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}
	user, err := a.backend.SignIn(email, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredentials, err)
	}
	return user, nil
}
