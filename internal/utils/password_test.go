package utils

import (
	"strings"
	"testing"
)

func TestValidatePassword_CollectsAllViolations(t *testing.T) {
	result := ValidatePassword("short")

	if result.IsValid {
		t.Error("Expected password to be invalid")
	}

	// length, uppercase and digit rules all fail for "short"
	if len(result.Errors) != 3 {
		t.Fatalf("Expected 3 violations, got %d: %v", len(result.Errors), result.Errors)
	}

	if result.Errors[0] != "Password must be at least 8 characters long" {
		t.Errorf("Expected length violation first, got %q", result.Errors[0])
	}
}

func TestValidatePassword_TooLong(t *testing.T) {
	result := ValidatePassword("Aa1" + strings.Repeat("x", 126))

	if result.IsValid {
		t.Error("Expected password to be invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Password must not exceed 128 characters" {
		t.Errorf("Expected max-length violation, got %v", result.Errors)
	}
}

func TestValidatePassword_Valid(t *testing.T) {
	result := ValidatePassword("Password1")

	if !result.IsValid {
		t.Errorf("Expected password to be valid, got violations %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no violations, got %v", result.Errors)
	}
}

func TestValidatePassword_Strength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     PasswordStrength
	}{
		{"minimal valid", "Pass123z", StrengthMedium},
		{"long with special chars", "Tr!cky-Passw0rd-2024", StrengthStrong},
		{"lowercase only", "pass", StrengthWeak},
		{"twelve chars mixed", "Password1234", StrengthStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePassword(tt.password).Strength
			if got != tt.want {
				t.Errorf("ValidatePassword(%q).Strength = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestIsCommonPassword(t *testing.T) {
	if !IsCommonPassword("password123") {
		t.Error("Expected password123 to be common")
	}
	if !IsCommonPassword("QWERTY") {
		t.Error("Expected lookup to be case insensitive")
	}
	if IsCommonPassword("Tr!cky-Passw0rd-2024") {
		t.Error("Expected uncommon password to pass")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "Password1" {
		t.Error("Expected hash to differ from the plaintext")
	}
	if !CheckPasswordHash("Password1", hash) {
		t.Error("Expected matching password to verify")
	}
	if CheckPasswordHash("Password2", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}
