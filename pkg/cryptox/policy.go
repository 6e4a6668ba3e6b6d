package cryptox

import (
	"errors"
	"unicode"
)

var ErrWeakPassword = errors.New(
	"password must be at least 6 characters and contain an uppercase letter and a symbol",
)

// ValidatePassword enforces the account password policy: minimum 6
// characters, at least one uppercase letter, at least one symbol. All
// entry points that accept a new password share this single check so the
// policy cannot drift between signup, change, and reset.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	var hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}
