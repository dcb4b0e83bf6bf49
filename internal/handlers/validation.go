package handlers

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"rooftopgarden/internal/apperrors"
)

var registerOnce sync.Once

// registerValidators, gin'in validator motoruna özel kuralları ekler
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

// bindError, binding hatasını kullanıcıya gösterilecek uygulama hatasına çevirir
func bindError(err error) *apperrors.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			return apperrors.Wrap(apperrors.ErrMissingFields, err)
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return apperrors.New(apperrors.ErrInvalidInput.Code, "Please enter a valid email address.", err)
	case "eqfield":
		return apperrors.New(apperrors.ErrInvalidInput.Code, "Passwords do not match.", err)
	case "min":
		return apperrors.New(apperrors.ErrInvalidInput.Code, "Password must be at least "+fe.Param()+" characters.", err)
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err)
}
