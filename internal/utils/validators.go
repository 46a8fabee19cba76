package utils

import (
	"strings"
	"unicode"
)

// IsValidEmail is a cheap structural check, not RFC validation: something
// before an "@", and a dot somewhere after it.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

// IsComplexPassword requires at least 8 characters with an upper-case
// letter, a lower-case letter, a digit, and a punctuation or symbol rune.
func IsComplexPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}
