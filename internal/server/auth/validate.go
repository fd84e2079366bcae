package auth

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/polyglot/internal/common"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
	// PasswordSymbols is the set of characters accepted as "special".
	PasswordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?`~"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	langRe  = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]{2,8})?$`)
)

// ValidateEmail checks the local@domain.tld shape.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return common.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the registration policy: at least
// MinPasswordLength characters and at most MaxPasswordBytes bytes, one
// uppercase letter and one symbol from PasswordSymbols. It is not applied
// on login.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength || len(password) > MaxPasswordBytes {
		return common.ErrWeakPassword
	}

	var hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasSymbol {
		return common.ErrWeakPassword
	}
	return nil
}

// ValidateLang accepts short ISO-639-like codes such as "en", "fr" or "pt-br".
// Empty is allowed when allowEmpty is set (preferences may be cleared).
func ValidateLang(code string, allowEmpty bool) error {
	if code == "" && allowEmpty {
		return nil
	}
	if !langRe.MatchString(code) {
		return common.ErrInvalidInput
	}
	return nil
}

// ValidateKind accepts common.KindText and common.KindVoice.
func ValidateKind(kind string) error {
	if kind != common.KindText && kind != common.KindVoice {
		return common.ErrInvalidInput
	}
	return nil
}
