package service

import (
	"errors"
	"fmt"
)

// Error text in this package is shown to API clients verbatim, hence
// the full sentences.
var (
	ErrDuplicateEmail           = errors.New("An account with this email already exists")
	ErrCommonPassword           = errors.New("This password is too common. Please choose a stronger password.")
	ErrAlreadyVerified          = errors.New("This email is already verified. You can sign in now.")
	ErrInvalidVerificationToken = errors.New("Invalid verification token")
	ErrVerificationTokenExpired = errors.New("Verification token has expired. Please request a new one.")
	ErrInvalidResetToken        = errors.New("Invalid or expired reset token")
	ErrResetTokenExpired        = errors.New("Reset token has expired. Please request a new one.")
	ErrVerificationEmailFailed  = errors.New("Failed to send verification email. Please try again.")
	ErrResetEmailFailed         = errors.New("Failed to send password reset email. Please try again.")
	ErrInvalidSession           = errors.New("Invalid or expired session")
)

// ValidationError carries a client-facing message for a rejected
// request field, keeping it distinguishable from internal failures.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// RateLimitError is returned when a flow exceeds its request budget.
// RetryAfterMinutes is the remaining window rounded up to whole
// minutes and is what the message and the Retry-After header report.
type RateLimitError struct {
	RetryAfterMinutes int
	message           string
}

func (e *RateLimitError) Error() string {
	return e.message
}

// NewSignupRateLimitError builds the refusal for throttled signups.
func NewSignupRateLimitError(minutes int) *RateLimitError {
	return &RateLimitError{
		RetryAfterMinutes: minutes,
		message:           fmt.Sprintf("Too many signup attempts. Please try again in %d minutes.", minutes),
	}
}

// NewRateLimitError builds the refusal for the remaining throttled flows.
func NewRateLimitError(minutes int) *RateLimitError {
	return &RateLimitError{
		RetryAfterMinutes: minutes,
		message:           fmt.Sprintf("Too many requests. Please try again in %d minutes.", minutes),
	}
}
