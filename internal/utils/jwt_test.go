package utils

import (
	"testing"
	"time"

	"github.com/hefica/hefica-backend/internal/domain"
)

const testSecret = "test-session-secret-at-least-32-characters"

func testAccount() *domain.Account {
	return &domain.Account{
		ID:        "7f9c24e5-1fb2-4f6e-9a40-111111111111",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestSessionManager_IssueAndValidate(t *testing.T) {
	manager := NewSessionManager(testSecret, 30*24*time.Hour)

	token, err := manager.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.UserID != "7f9c24e5-1fb2-4f6e-9a40-111111111111" {
		t.Errorf("Unexpected user id %q", claims.UserID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("Unexpected email %q", claims.Email)
	}
	if claims.FirstName != "Jane" || claims.LastName != "Doe" {
		t.Errorf("Unexpected name %q %q", claims.FirstName, claims.LastName)
	}
	if claims.IsExpired() {
		t.Error("Expected fresh session to be valid")
	}
}

func TestSessionManager_RejectsWrongSecret(t *testing.T) {
	manager := NewSessionManager(testSecret, time.Hour)
	other := NewSessionManager("another-session-secret-with-32-chars!!", time.Hour)

	token, err := manager.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Validate(token); err == nil {
		t.Error("Expected validation to fail with a different secret")
	}
}

func TestSessionManager_RejectsExpired(t *testing.T) {
	manager := NewSessionManager(testSecret, -time.Minute)

	token, err := manager.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := manager.Validate(token); err == nil {
		t.Error("Expected expired session to be rejected")
	}
}

func TestSessionManager_RejectsGarbage(t *testing.T) {
	manager := NewSessionManager(testSecret, time.Hour)

	if _, err := manager.Validate("not-a-token"); err == nil {
		t.Error("Expected garbage token to be rejected")
	}
}
