package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// minSecretBytes matches the HS256 key size.
const minSecretBytes = 32

// GenerateSigningSecret returns a random URL-safe secret suitable for JWT_SECRET.
func GenerateSigningSecret(lengthInBytes int) (string, error) {
	if lengthInBytes < minSecretBytes {
		return "", fmt.Errorf("secret must be at least %d bytes, got %d", minSecretBytes, lengthInBytes)
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
