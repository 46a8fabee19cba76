package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecureToken returns length random bytes encoded as URL-safe
// base64.
func GenerateSecureToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}
