package mailer

import "context"

// Mailer delivers account lifecycle emails. Implementations must treat
// each call as best-effort delivery; retry policy is the caller's
// concern (signup swallows failures, forgot-password surfaces them).
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, token, firstName string) error
	SendPasswordResetEmail(ctx context.Context, to, token, firstName string) error
	SendWelcomeEmail(ctx context.Context, to, firstName string) error
}
