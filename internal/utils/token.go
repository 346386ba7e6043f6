package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/yukikurage/family-graph-api/internal/constants"
)

// GenerateSessionToken returns a URL-safe token carrying
// constants.SessionTokenBytes bytes of entropy
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, constants.SessionTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// IsWellFormedToken reports whether s could have been produced by
// GenerateSessionToken
func IsWellFormedToken(s string) bool {
	if len(s) != base64.RawURLEncoding.EncodedLen(constants.SessionTokenBytes) {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
