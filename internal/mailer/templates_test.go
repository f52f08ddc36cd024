package mailer

import (
	"strings"
	"testing"
)

func TestRenderTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template string
		contains []string
	}{
		{
			"verification",
			"verification",
			[]string{
				"Hi Jane!",
				`href="https://hefica.app/auth/verify-email?token=abc123"`,
				"expire in 24 hours",
			},
		},
		{
			"password reset",
			"password_reset",
			[]string{
				"Hi Jane,",
				`href="https://hefica.app/auth/verify-email?token=abc123"`,
				"expire in 1 hour",
				"Your password will not be changed",
			},
		},
		{
			"welcome",
			"welcome",
			[]string{
				"Welcome, Jane!",
				"your account is now active",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := newTemplateData("Hefica", "Jane", "https://hefica.app/auth/verify-email?token=abc123", "Click")
			body, err := renderTemplate(tt.template, data)
			if err != nil {
				t.Fatalf("Failed to render %s: %v", tt.template, err)
			}

			if !strings.Contains(body, "Hefica") {
				t.Error("Expected body to mention the app name")
			}
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("Expected body to contain %q", want)
				}
			}
		})
	}
}

func TestRenderTemplateEscapesUserInput(t *testing.T) {
	data := newTemplateData("Hefica", `<script>alert("x")</script>`, "https://hefica.app", "Click")
	body, err := renderTemplate("welcome", data)
	if err != nil {
		t.Fatalf("Failed to render welcome: %v", err)
	}

	if strings.Contains(body, "<script>") {
		t.Error("Expected HTML in the first name to be escaped")
	}
}

func TestRenderTemplateUnknownName(t *testing.T) {
	if _, err := renderTemplate("nonexistent", templateData{}); err == nil {
		t.Error("Expected error for unknown template name")
	}
}
