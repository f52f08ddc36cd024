package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuthMetrics counts account lifecycle events. All methods are nil
// safe so callers can run without metrics wired.
type AuthMetrics struct {
	signups        metric.Int64Counter
	signInFailures metric.Int64Counter
	lockouts       metric.Int64Counter
	emailsSent     metric.Int64Counter
}

// NewAuthMetrics registers the auth counters on the global meter
func NewAuthMetrics() (*AuthMetrics, error) {
	meter := otel.Meter("hefica-backend/auth")

	signups, err := meter.Int64Counter("auth_signups_total",
		metric.WithDescription("Completed account registrations"))
	if err != nil {
		return nil, fmt.Errorf("failed to create signups counter: %w", err)
	}

	signInFailures, err := meter.Int64Counter("auth_sign_in_failures_total",
		metric.WithDescription("Refused sign-in attempts by reason"))
	if err != nil {
		return nil, fmt.Errorf("failed to create sign-in failures counter: %w", err)
	}

	lockouts, err := meter.Int64Counter("auth_lockouts_total",
		metric.WithDescription("Accounts locked after repeated failures"))
	if err != nil {
		return nil, fmt.Errorf("failed to create lockouts counter: %w", err)
	}

	emailsSent, err := meter.Int64Counter("auth_emails_sent_total",
		metric.WithDescription("Lifecycle emails sent by kind"))
	if err != nil {
		return nil, fmt.Errorf("failed to create emails counter: %w", err)
	}

	return &AuthMetrics{
		signups:        signups,
		signInFailures: signInFailures,
		lockouts:       lockouts,
		emailsSent:     emailsSent,
	}, nil
}

func (m *AuthMetrics) RecordSignup(ctx context.Context) {
	if m == nil {
		return
	}
	m.signups.Add(ctx, 1)
}

func (m *AuthMetrics) RecordSignInFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.signInFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *AuthMetrics) RecordLockout(ctx context.Context) {
	if m == nil {
		return
	}
	m.lockouts.Add(ctx, 1)
}

func (m *AuthMetrics) RecordEmailSent(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.emailsSent.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
