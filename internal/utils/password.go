package utils

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// PasswordStrength is a coarse classification, independent of validity.
type PasswordStrength string

const (
	StrengthWeak   PasswordStrength = "weak"
	StrengthMedium PasswordStrength = "medium"
	StrengthStrong PasswordStrength = "strong"
)

// PasswordValidation is the verdict of ValidatePassword: every rule is
// checked and every violation collected, never short-circuited.
type PasswordValidation struct {
	IsValid  bool
	Errors   []string
	Strength PasswordStrength
}

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// ValidatePassword checks length and character-class rules and scores
// strength. Validity and strength are separate: a short password with
// all character classes is invalid but may still score medium.
func ValidatePassword(password string) PasswordValidation {
	var errors []string

	if len(password) < 8 {
		errors = append(errors, "Password must be at least 8 characters long")
	}
	if len(password) > 128 {
		errors = append(errors, "Password must not exceed 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		errors = append(errors, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		errors = append(errors, "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		errors = append(errors, "Password must contain at least one number")
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	if len(password) >= 12 {
		score++
	}
	if hasUpper {
		score++
	}
	if hasLower {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSpecial {
		score++
	}

	strength := StrengthWeak
	switch {
	case score >= 5:
		strength = StrengthStrong
	case score >= 3:
		strength = StrengthMedium
	}

	return PasswordValidation{
		IsValid:  len(errors) == 0,
		Errors:   errors,
		Strength: strength,
	}
}

var commonPasswords = map[string]struct{}{
	"password":   {},
	"12345678":   {},
	"qwerty":     {},
	"abc123":     {},
	"password123": {},
	"admin":      {},
	"letmein":    {},
	"welcome":    {},
	"monkey":     {},
	"1234567890": {},
}

// IsCommonPassword reports membership in the known-weak deny-list,
// case-insensitively. Checked in addition to ValidatePassword.
func IsCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
