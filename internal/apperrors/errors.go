package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an application error carrying the HTTP status shown to the user
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two *Error values by code and message, so a
// wrapped sentinel still compares equal to the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap, sentinel hatayı alttaki hata ile birlikte döndürür.
// Sentinel değişkenler paylaşıldığı için kopya üzerinde çalışır.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// StatusCode, hatanın HTTP durum kodunu döndürür; bilinmeyen hatalar 500'dür
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// UserMessage, kullanıcıya gösterilecek mesajı döndürür
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

// Form / validation errors
var (
	ErrMissingFields = New(http.StatusBadRequest, "Please fill in all required fields.", nil)
	ErrInvalidInput  = New(http.StatusBadRequest, "Invalid input", nil)
	ErrSpam          = New(http.StatusBadRequest, "Your message looks like spam and was not posted.", nil)
	ErrPostNotFound  = New(http.StatusNotFound, "Post not found", nil)
	ErrNotFound      = New(http.StatusNotFound, "Not found", nil)
	ErrEmptyCart     = New(http.StatusBadRequest, "Your cart is empty.", nil)
)

// Authentication errors
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Login unsuccessful. Please check your credentials.", nil)
	ErrLoginRequired      = New(http.StatusUnauthorized, "Please log in first.", nil)
)

// External collaborator errors
var (
	ErrBackendDisabled   = New(http.StatusServiceUnavailable, "Backend not configured. This feature is disabled.", nil)
	ErrBackend           = New(http.StatusBadGateway, "The backend request failed.", nil)
	ErrAssistantDisabled = New(http.StatusServiceUnavailable, "API key not configured. Please set up your API key to use the chatbot.", nil)
	ErrAssistant         = New(http.StatusBadGateway, "Could not process your request.", nil)
	ErrEmptyPrompt       = New(http.StatusBadRequest, "Please enter a question before submitting.", nil)
	ErrTranscription     = New(http.StatusBadGateway, "Could not transcribe audio. Please try again.", nil)
	ErrUnsupportedAudio  = New(http.StatusBadRequest, "Unsupported audio file. Please upload an mp3, wav or ogg file.", nil)
	ErrAudioTooLarge     = New(http.StatusRequestEntityTooLarge, "Audio file is too large.", nil)
	ErrTooManyRequests   = New(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
)
