package keyring

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when an export passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase []byte) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if utf8.RuneCount(passphrase) < minPassphraseLength {
		return false
	}
	for len(passphrase) > 0 {
		r, size := utf8.DecodeRune(passphrase)
		passphrase = passphrase[size:]
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
