package database

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/gotrue-go/types"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/models"
)

type fakeAuth struct {
	signInFn func(email, password string) (*types.TokenResponse, error)
	signupFn func(req types.SignupRequest) (*types.SignupResponse, error)
}

func (f *fakeAuth) SignInWithEmailPassword(email, password string) (*types.TokenResponse, error) {
	return f.signInFn(email, password)
}

func (f *fakeAuth) Signup(req types.SignupRequest) (*types.SignupResponse, error) {
	return f.signupFn(req)
}

// echoInsert, postgrest'in returning=representation davranışını taklit eder:
// gönderilen satırları JSON'a çevirip id atar ve geri döndürür.
func echoInsert(tables map[string][]map[string]any) insertFunc {
	nextID := int64(100)
	return func(table string, value interface{}, out interface{}) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		var rows []map[string]any
		if raw[0] == '[' {
			if err := json.Unmarshal(raw, &rows); err != nil {
				return err
			}
		} else {
			var one map[string]any
			if err := json.Unmarshal(raw, &one); err != nil {
				return err
			}
			rows = []map[string]any{one}
		}
		for _, r := range rows {
			nextID++
			r["id"] = nextID
		}
		tables[table] = append(tables[table], rows...)
		echoed, _ := json.Marshal(rows)
		return json.Unmarshal(echoed, out)
	}
}

func TestSupabaseBackend_SignIn(t *testing.T) {
	id := uuid.New()
	b := &SupabaseBackend{auth: &fakeAuth{
		signInFn: func(email, password string) (*types.TokenResponse, error) {
			if password != "secret" {
				return nil, errors.New("invalid login credentials")
			}
			tok := &types.TokenResponse{}
			tok.User.ID = id
			tok.User.Email = email
			return tok, nil
		},
	}}

	user, err := b.SignIn("asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, id.String(), user.ID)
	assert.Equal(t, "asha", user.Username)

	_, err = b.SignIn("asha@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestSupabaseBackend_SignUp(t *testing.T) {
	var got types.SignupRequest
	b := &SupabaseBackend{auth: &fakeAuth{
		signupFn: func(req types.SignupRequest) (*types.SignupResponse, error) {
			got = req
			return &types.SignupResponse{}, nil
		},
	}}

	user, err := b.SignUp("ravi@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", got.Email)
	assert.Equal(t, "hunter22", got.Password)
	assert.Equal(t, "ravi", user.Username)
}

func TestSupabaseBackend_InsertOrderEchoesID(t *testing.T) {
	tables := map[string][]map[string]any{}
	b := &SupabaseBackend{insert: echoInsert(tables)}

	order := &models.Order{
		OrderNumber:  "RG-TEST",
		CustomerName: "Asha",
		Email:        "asha@example.com",
		TotalPrice:   decimal.RequireFromString("44.97"),
		Status:       "pending",
		Items:        []models.OrderItem{{ProductID: 3, Quantity: 3}},
	}
	created, err := b.InsertOrder(order)
	require.NoError(t, err)
	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, "RG-TEST", created.OrderNumber)
	assert.True(t, created.TotalPrice.Equal(decimal.RequireFromString("44.97")))
	assert.Len(t, created.Items, 1, "items are carried over from the request")
	assert.NotContains(t, tables[TableOrders][0], "items")

	items, err := b.InsertOrderItems(models.OrderItemsFromCart(created.ID, &models.Cart{Items: []models.CartItem{
		{ProductID: 3, Name: "Organic Potting Mix", Quantity: 3, Price: decimal.RequireFromString("14.99"), TotalPrice: decimal.RequireFromString("44.97")},
	}}))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(101), items[0].OrderID)
	assert.NotZero(t, items[0].ID)
}

func TestSupabaseBackend_InsertContactMessage(t *testing.T) {
	tables := map[string][]map[string]any{}
	b := &SupabaseBackend{insert: echoInsert(tables)}

	row, err := b.InsertContactMessage(&models.ContactMessage{Name: "A", Email: "a@b.co", Message: "Hello"})
	require.NoError(t, err)
	assert.NotZero(t, row.ID)
	assert.Equal(t, "Hello", row.Message)
	assert.Len(t, tables[TableContactMessages], 1)
}

func TestSupabaseBackend_InsertFailure(t *testing.T) {
	b := &SupabaseBackend{insert: func(string, interface{}, interface{}) error {
		return errors.New("permission denied for table orders")
	}}
	_, err := b.InsertOrder(&models.Order{})
	assert.ErrorIs(t, err, apperrors.ErrBackend)

	items, err := b.InsertOrderItems(nil)
	assert.NoError(t, err)
	assert.Nil(t, items)
}
