package identity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEmail is returned when caller input is not a usable email address.
var ErrInvalidEmail = errors.New("invalid email")

// NormalizeEmail trims and lower-cases an email so it can be used as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail normalizes email and rejects values without a local part and a domain.
func ValidateEmail(email string) (string, error) {
	normalized := NormalizeEmail(email)
	at := strings.Index(normalized, "@")
	if at <= 0 || at == len(normalized)-1 || strings.Count(normalized, "@") != 1 {
		return "", fmt.Errorf("%w: %q must contain a local part and a domain separated by '@'", ErrInvalidEmail, email)
	}
	if strings.ContainsAny(normalized, " \t\n") {
		return "", fmt.Errorf("%w: %q contains whitespace", ErrInvalidEmail, email)
	}
	return normalized, nil
}

// SameEmail compares two addresses after normalization.
func SameEmail(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}
