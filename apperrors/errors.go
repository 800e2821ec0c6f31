// Package apperrors defines the error taxonomy shared by the service and
// handler layers and its mapping onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

// ValidationError marks malformed or missing input. It may wrap a single
// error or a multierror aggregating several field failures.
type ValidationError struct {
	Err error
}

func (e ValidationError) Error() string { return e.Err.Error() }

func (e ValidationError) Unwrap() error { return e.Err }

// Validation wraps err as a ValidationError. A nil err yields nil.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	return ValidationError{Err: err}
}

func Validationf(format string, args ...interface{}) error {
	return ValidationError{Err: fmt.Errorf(format, args...)}
}

// BusinessError marks a well-formed request rejected by a business rule,
// such as placing an order with an empty cart.
type BusinessError struct {
	Msg string
}

func (e BusinessError) Error() string { return e.Msg }

func Business(msg string) error { return BusinessError{Msg: msg} }

// Status maps an error to the HTTP status code it should surface as.
func Status(err error) int {
	var ve ValidationError
	var be BusinessError
	switch {
	case errors.As(err, &ve), errors.As(err, &be):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
