package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// StateSize is the entropy, in bytes, of OAuth state and nonce values.
const StateSize = 16

// RandomString returns size random bytes encoded as unpadded base64url.
func RandomString(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewState returns a value for the OAuth "state" parameter.
func NewState() (string, error) {
	return RandomString(StateSize)
}

// FingerprintToken returns the base64url SHA-256 of a token (43 chars). Logs
// carry fingerprints so a token can be correlated without being leaked.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
