package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrBackend, cause)

	assert.True(t, errors.Is(err, ErrBackend))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrAssistant))
	assert.Equal(t, "The backend request failed.: connection refused", err.Error())
	// sentinel must stay untouched
	assert.Nil(t, ErrBackend.Err)
}

func TestStatusCodeAndUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", ErrEmptyCart)
	assert.Equal(t, http.StatusBadRequest, StatusCode(wrapped))
	assert.Equal(t, "Your cart is empty.", UserMessage(wrapped))

	plain := errors.New("boom")
	assert.Equal(t, http.StatusInternalServerError, StatusCode(plain))
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(plain))
}
