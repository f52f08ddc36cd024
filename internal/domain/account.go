package domain

import "time"

// AccountStatus is the administrative state of an account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountDeleted   AccountStatus = "DELETED"
)

// Account represents a registered user. Email is stored lowercased and
// compared case-insensitively; verification and reset tokens are unique
// lookup keys and single-use.
type Account struct {
	ID           string  `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	FirstName    string  `json:"first_name" db:"first_name"`
	LastName     string  `json:"last_name" db:"last_name"`
	Avatar       *string `json:"avatar" db:"avatar"`

	EmailVerified           bool       `json:"email_verified" db:"email_verified"`
	VerificationToken       *string    `json:"-" db:"verification_token"`
	VerificationTokenExpiry *time.Time `json:"-" db:"verification_token_expiry"`
	ResetToken              *string    `json:"-" db:"reset_token"`
	ResetTokenExpiry        *time.Time `json:"-" db:"reset_token_expiry"`

	FailedLoginAttempts int           `json:"-" db:"failed_login_attempts"`
	LockoutUntil        *time.Time    `json:"-" db:"lockout_until"`
	Status              AccountStatus `json:"status" db:"account_status"`
	LastLoginAt         *time.Time    `json:"last_login_at" db:"last_login_at"`

	// Profile attributes used by the dashboard and settings page.
	Age           *int     `json:"age" db:"age"`
	Height        *float64 `json:"height" db:"height"`
	Weight        *float64 `json:"weight" db:"weight"`
	Gender        *string  `json:"gender" db:"gender"`
	ActivityLevel *string  `json:"activity_level" db:"activity_level"`
	FitnessGoal   *string  `json:"fitness_goal" db:"fitness_goal"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsLockedOut reports whether the account is under an active lockout.
// An elapsed lockout is treated as expired even though the stored value
// is only cleared on the next successful login or password reset.
func (a *Account) IsLockedOut(now time.Time) bool {
	return a.LockoutUntil != nil && a.LockoutUntil.After(now)
}

// SessionClaims represents the identity carried in a session token.
type SessionClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Exp       int64  `json:"exp"`
	Iat       int64  `json:"iat"`
}

// IsExpired checks if the session has expired
func (c SessionClaims) IsExpired() bool {
	return time.Now().Unix() > c.Exp
}
