package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/models"
)

// Tablo adları
const (
	TableContactMessages = "contact_messages"
	TableOrders          = "orders"
	TableOrderItems      = "order_items"
)

// Backend, barındırılan auth + veritabanı servisinin uygulamanın kullandığı kısmı.
// Çağrılar senkrondur, tekrar denenmez.
type Backend interface {
	SignIn(email, password string) (*models.User, error)
	SignUp(email, password string) (*models.User, error)
	InsertContactMessage(msg *models.ContactMessage) (*models.ContactMessage, error)
	InsertOrder(order *models.Order) (*models.Order, error)
	InsertOrderItems(items []models.OrderItem) ([]models.OrderItem, error)
}

// authAPI, gotrue istemcisinin kullandığımız metotları
type authAPI interface {
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
	Signup(req types.SignupRequest) (*types.SignupResponse, error)
}

// insertFunc, satırları tabloya ekler ve dönen satırları out'a çözer
type insertFunc func(table string, value interface{}, out interface{}) error

// SupabaseBackend, Supabase üzerinden Backend'i uygular
type SupabaseBackend struct {
	auth   authAPI
	insert insertFunc
}

// NewSupabaseBackend, Supabase istemcisini oluşturur
func NewSupabaseBackend(url, key string) (*SupabaseBackend, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create supabase client: %w", err)
	}
	return &SupabaseBackend{
		auth: client.Auth,
		insert: func(table string, value interface{}, out interface{}) error {
			_, err := client.From(table).Insert(value, false, "", "representation", "").ExecuteTo(out)
			return err
		},
	}, nil
}

// SignIn, e-posta ve parola ile giriş yapar
func (b *SupabaseBackend) SignIn(email, password string) (*models.User, error) {
	token, err := b.auth.SignInWithEmailPassword(email, password)
	if err != nil {
		logger.Log.Warn("SupabaseBackend.SignIn - failed", zap.String("email", email), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrInvalidCredentials, err)
	}
	user := &models.User{
		ID:       token.User.ID.String(),
		Email:    token.User.Email,
		Username: displayName(token.User.Email),
	}
	if user.Email == "" {
		user.Email = email
		user.Username = displayName(email)
	}
	return user, nil
}

// SignUp, yeni kullanıcı kaydı oluşturur
func (b *SupabaseBackend) SignUp(email, password string) (*models.User, error) {
	if _, err := b.auth.Signup(types.SignupRequest{Email: email, Password: password}); err != nil {
		logger.Log.Warn("SupabaseBackend.SignUp - failed", zap.String("email", email), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrBackend, err)
	}
	return &models.User{Email: email, Username: displayName(email)}, nil
}

// InsertContactMessage, iletişim mesajını kaydeder ve oluşturulan satırı döndürür
func (b *SupabaseBackend) InsertContactMessage(msg *models.ContactMessage) (*models.ContactMessage, error) {
	var rows []models.ContactMessage
	if err := b.insertOne(TableContactMessages, msg, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrBackend, errors.New("insert returned no rows"))
	}
	return &rows[0], nil
}

// InsertOrder, siparişi kaydeder; dönen satır backend'in ürettiği ID'yi içerir
func (b *SupabaseBackend) InsertOrder(order *models.Order) (*models.Order, error) {
	var rows []models.Order
	if err := b.insertOne(TableOrders, order, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].ID == 0 {
		return nil, apperrors.Wrap(apperrors.ErrBackend, errors.New("insert returned no order id"))
	}
	created := rows[0]
	created.Items = order.Items
	return &created, nil
}

// InsertOrderItems, sipariş satırlarını tek istekte kaydeder
func (b *SupabaseBackend) InsertOrderItems(items []models.OrderItem) ([]models.OrderItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	var rows []models.OrderItem
	if err := b.insertOne(TableOrderItems, items, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (b *SupabaseBackend) insertOne(table string, value interface{}, out interface{}) error {
	if err := b.insert(table, value, out); err != nil {
		logger.Log.Error("SupabaseBackend - insert failed", zap.String("table", table), zap.Error(err))
		return apperrors.Wrap(apperrors.ErrBackend, err)
	}
	return nil
}

// displayName, e-posta adresinin @ öncesini kullanıcı adı olarak kullanır
func displayName(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
