package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

type templateData struct {
	AppName   string
	FirstName string
	ActionURL string
	Label     string
	Year      int
}

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "layout_top"}}
<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
  </head>
  <body style="margin:0;padding:0;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;background-color:#f9fafb;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f9fafb;padding:40px 0;">
      <tr><td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:16px;overflow:hidden;">
          <tr><td style="background-color:#000000;padding:40px;text-align:center;">
            <h1 style="margin:0;color:#ffffff;font-size:28px;font-weight:700;">{{.AppName}}</h1>
          </td></tr>
          <tr><td style="padding:40px;">
{{end}}

{{define "layout_bottom"}}
          </td></tr>
          <tr><td style="background-color:#f9fafb;padding:32px;text-align:center;border-top:1px solid #e5e7eb;">
            <p style="margin:0;color:#9ca3af;font-size:12px;">&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
          </td></tr>
        </table>
      </td></tr>
    </table>
  </body>
</html>
{{end}}

{{define "button"}}
<table width="100%" cellpadding="0" cellspacing="0"><tr><td align="center">
  <a href="{{.ActionURL}}" style="display:inline-block;background-color:#000000;color:#ffffff;padding:16px 32px;text-decoration:none;border-radius:8px;font-weight:600;font-size:16px;">{{.Label}}</a>
</td></tr></table>
{{end}}

{{define "verification"}}
{{template "layout_top" .}}
<h2 style="margin:0 0 16px 0;color:#111827;font-size:24px;font-weight:600;">Hi {{.FirstName}}!</h2>
<p style="margin:0 0 24px 0;color:#4b5563;font-size:16px;line-height:1.6;">
  Welcome to {{.AppName}}! We're excited to have you on your wellness journey.
</p>
<p style="margin:0 0 32px 0;color:#4b5563;font-size:16px;line-height:1.6;">
  To get started, please verify your email address by clicking the button below:
</p>
{{template "button" .}}
<p style="margin:32px 0 0 0;color:#6b7280;font-size:14px;line-height:1.6;">
  If you didn't create an account with {{.AppName}}, you can safely ignore this email.
</p>
<p style="margin:16px 0 0 0;color:#6b7280;font-size:14px;line-height:1.6;">
  This verification link will expire in 24 hours.
</p>
{{template "layout_bottom" .}}
{{end}}

{{define "password_reset"}}
{{template "layout_top" .}}
<h2 style="margin:0 0 16px 0;color:#111827;font-size:24px;font-weight:600;">Hi {{.FirstName}},</h2>
<p style="margin:0 0 24px 0;color:#4b5563;font-size:16px;line-height:1.6;">
  We received a request to reset your password for your {{.AppName}} account.
</p>
<p style="margin:0 0 32px 0;color:#4b5563;font-size:16px;line-height:1.6;">
  Click the button below to reset your password:
</p>
{{template "button" .}}
<p style="margin:32px 0 0 0;color:#6b7280;font-size:14px;line-height:1.6;">
  If you didn't request a password reset, you can safely ignore this email. Your password will not be changed.
</p>
<p style="margin:16px 0 0 0;color:#6b7280;font-size:14px;line-height:1.6;">
  This password reset link will expire in 1 hour for security reasons.
</p>
{{template "layout_bottom" .}}
{{end}}

{{define "welcome"}}
{{template "layout_top" .}}
<h2 style="margin:0 0 16px 0;color:#111827;font-size:24px;font-weight:600;">Welcome, {{.FirstName}}!</h2>
<p style="margin:0 0 24px 0;color:#4b5563;font-size:16px;line-height:1.6;">
  Your email has been verified and your account is now active!
</p>
<ul style="margin:0 0 32px 0;padding-left:24px;color:#4b5563;font-size:16px;line-height:1.8;">
  <li>Track your workouts and exercises</li>
  <li>Plan and log your meals</li>
  <li>Monitor your progress over time</li>
  <li>Set and achieve your fitness goals</li>
</ul>
{{template "button" .}}
{{template "layout_bottom" .}}
{{end}}
`))

func renderTemplate(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func newTemplateData(appName, firstName, actionURL, label string) templateData {
	return templateData{
		AppName:   appName,
		FirstName: firstName,
		ActionURL: actionURL,
		Label:     label,
		Year:      time.Now().Year(),
	}
}
