package service

import "fmt"

// SignInFailure enumerates the ways a sign-in attempt can be refused.
// The set is closed; handlers switch over it to pick a status code.
type SignInFailure int

const (
	// SignInInvalidCredentials covers both unknown emails and wrong
	// passwords so the response cannot be used to probe for accounts.
	SignInInvalidCredentials SignInFailure = iota
	SignInAccountSuspended
	SignInAccountGone
	SignInAccountLocked
	SignInEmailNotVerified
)

// String returns the metric label for the failure kind.
func (k SignInFailure) String() string {
	switch k {
	case SignInAccountSuspended:
		return "account_suspended"
	case SignInAccountGone:
		return "account_gone"
	case SignInAccountLocked:
		return "account_locked"
	case SignInEmailNotVerified:
		return "email_not_verified"
	default:
		return "invalid_credentials"
	}
}

// SignInError is the only error type SignIn returns for a refused
// attempt. MinutesLeft is set for SignInAccountLocked; FreshLock marks
// a lock that this very attempt triggered, which changes the wording.
type SignInError struct {
	Kind        SignInFailure
	MinutesLeft int
	FreshLock   bool
}

func (e *SignInError) Error() string {
	switch e.Kind {
	case SignInAccountSuspended:
		return "Your account has been suspended. Please contact support."
	case SignInAccountGone:
		return "This account no longer exists"
	case SignInAccountLocked:
		if e.FreshLock {
			return "Too many failed attempts. Account locked for 15 minutes."
		}
		return fmt.Sprintf("Account is locked. Try again in %d minutes.", e.MinutesLeft)
	case SignInEmailNotVerified:
		return "Please verify your email before signing in. Check your inbox for the verification link."
	default:
		return "Invalid email or password"
	}
}
