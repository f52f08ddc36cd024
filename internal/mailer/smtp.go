package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/hefica/hefica-backend/internal/config"
)

// SMTPMailer sends lifecycle emails over plain SMTP.
type SMTPMailer struct {
	cfg config.SMTPConfig
	app config.AppConfig
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg config.SMTPConfig, app config.AppConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, app: app}
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	e := &email.Email{
		To:      []string{to},
		From:    m.cfg.From,
		Subject: subject,
		HTML:    []byte(htmlBody),
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := e.Send(m.cfg.Address(), auth); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

// SendVerificationEmail delivers the email-verification link.
func (m *SMTPMailer) SendVerificationEmail(_ context.Context, to, token, firstName string) error {
	verificationURL := fmt.Sprintf("%s/auth/verify-email?token=%s", m.app.BaseURL, token)

	body, err := renderTemplate("verification", newTemplateData(m.app.Name, firstName, verificationURL, "Verify Email Address"))
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Welcome to %s - Verify your email", m.app.Name)
	return m.send(to, subject, body)
}

// SendPasswordResetEmail delivers the password-reset link.
func (m *SMTPMailer) SendPasswordResetEmail(_ context.Context, to, token, firstName string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", m.app.BaseURL, token)

	body, err := renderTemplate("password_reset", newTemplateData(m.app.Name, firstName, resetURL, "Reset Password"))
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s - Reset your password", m.app.Name)
	return m.send(to, subject, body)
}

// SendWelcomeEmail delivers the post-verification welcome message.
func (m *SMTPMailer) SendWelcomeEmail(_ context.Context, to, firstName string) error {
	dashboardURL := fmt.Sprintf("%s/dashboard", m.app.BaseURL)

	body, err := renderTemplate("welcome", newTemplateData(m.app.Name, firstName, dashboardURL, "Go to Dashboard"))
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Welcome to %s!", m.app.Name)
	return m.send(to, subject, body)
}

var _ Mailer = (*SMTPMailer)(nil)
