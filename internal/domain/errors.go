package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every error returned by the core wraps exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrIntegrity    = errors.New("integrity violation")
	ErrUpstream     = errors.New("upstream failure")
)

var (
	ErrEmailExists        = fmt.Errorf("%w: email already exists", ErrValidation)
	ErrInvalidAdminSecret = fmt.Errorf("%w: invalid or missing admin secret key", ErrValidation)

	ErrNoToken            = fmt.Errorf("%w: no token provided", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)

	ErrAdminOnly = fmt.Errorf("%w: admins only", ErrForbidden)

	ErrUserNotFound  = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrOrderNotFound = fmt.Errorf("%w: order not found", ErrNotFound)

	ErrPaymentWithoutOrder = fmt.Errorf("%w: payment references no order owned by the identity", ErrIntegrity)
	ErrPaymentExists       = fmt.Errorf("%w: order already has a payment", ErrIntegrity)
)

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
