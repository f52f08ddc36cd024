package utils

import (
	"encoding/hex"
	"testing"
	"time"
)

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken()
	if err != nil {
		t.Fatalf("GenerateSecureToken failed: %v", err)
	}

	// 32 random bytes hex encoded
	if len(token) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("Expected hex encoding, got %q", token)
	}

	other, err := GenerateSecureToken()
	if err != nil {
		t.Fatalf("GenerateSecureToken failed: %v", err)
	}
	if token == other {
		t.Error("Expected distinct tokens on consecutive calls")
	}
}

func TestTokenExpiry(t *testing.T) {
	expiry := TokenExpiry(24)

	want := time.Now().Add(24 * time.Hour)
	if expiry.Before(want.Add(-time.Minute)) || expiry.After(want.Add(time.Minute)) {
		t.Errorf("Expected expiry around %v, got %v", want, expiry)
	}
}

func TestIsTokenExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	if !IsTokenExpired(&past) {
		t.Error("Expected past expiry to be expired")
	}
	if IsTokenExpired(&future) {
		t.Error("Expected future expiry to be valid")
	}
	if !IsTokenExpired(nil) {
		t.Error("Expected nil expiry to count as expired")
	}
}
