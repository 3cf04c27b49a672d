package auth

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is the kind behind every *ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError carries the user-facing message for the first failed field.
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

var validate = validator.New(validator.WithRequiredStructEnabled())

// check runs struct tags; missing fields all share requiredMsg
func check(v any, requiredMsg string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg := requiredMsg
	switch fe.Tag() {
	case "email":
		msg = "Format email tidak valid."
	case "min":
		msg = fmt.Sprintf("%s minimal %s karakter.", fe.Field(), fe.Param())
	case "max":
		msg = fmt.Sprintf("%s maksimal %s karakter.", fe.Field(), fe.Param())
	}
	return &ValidationError{Field: fe.Field(), Tag: fe.Tag(), Message: msg}
}
