package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// GenerateToken returns size bytes of cryptographic randomness encoded as
// unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", size)
	}

	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("cryptox: read entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// FingerprintToken returns the base64url-encoded SHA-256 digest of a token.
// Stored secrets (one-time codes, tokens) are kept as fingerprints so a
// leaked table never yields the redeemable value.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
