package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the caller's token is missing, invalid,
	// expired, or does not belong to the resource owner.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrActiveCartExists means the user already has an active cart;
	// there is at most one per user.
	ErrActiveCartExists = errors.New("user already has an active cart")
	// ErrEmptyCart means checkout was attempted on a cart with no line
	// items.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError carries a field-level hint for malformed input. Every
// field is checked before any domain logic runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) ValidationError {
	return ValidationError{Field: field, Reason: reason}
}
