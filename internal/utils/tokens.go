package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateSecureToken returns a cryptographically random opaque token:
// 32 bytes hex-encoded, so 256 bits of entropy in a URL-safe string.
func GenerateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// TokenExpiry returns an absolute expiry timestamp the given number of
// hours from now.
func TokenExpiry(hours int) time.Time {
	return time.Now().Add(time.Duration(hours) * time.Hour)
}

// IsTokenExpired reports whether a token expiry has passed. A missing
// expiry counts as expired: fail closed.
func IsTokenExpired(expiry *time.Time) bool {
	if expiry == nil {
		return true
	}
	return time.Now().After(*expiry)
}
