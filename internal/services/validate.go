package services

import (
	"strings"

	"pizzeria/internal/token"
)

// normalizeEmail trims and lowercases the address and requires an "@",
// the same bar the original wire format set.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalid("email", "is required")
	}
	if !strings.Contains(email, "@") {
		return "", invalid("email", "must contain @")
	}
	return email, nil
}

// requireField trims the value and rejects blanks.
func requireField(field, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", invalid(field, "is required")
	}
	return value, nil
}

// normalizeTokenID enforces the exact token id length before any store
// access; anything else cannot possibly match a stored token.
func normalizeTokenID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if len(id) != token.IDLength {
		return "", invalid("token", "must be 20 characters")
	}
	return id, nil
}

// normalizeRecordID enforces the shared 20-char id format used by
// carts and orders.
func normalizeRecordID(field, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if len(id) != token.IDLength {
		return "", invalid(field, "must be 20 characters")
	}
	return id, nil
}
