package service

import (
	"testing"
	"time"
)

func newTestLimiter(t *testing.T) *RateLimiter {
	t.Helper()
	limiter := NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)
	return limiter
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	limiter := newTestLimiter(t)

	for i := 0; i < 3; i++ {
		result := limiter.Check("signup:1.2.3.4", 3, time.Hour)
		if !result.Allowed {
			t.Fatalf("Attempt %d should be allowed", i+1)
		}
		if result.Remaining != 3-(i+1) {
			t.Errorf("Attempt %d: expected remaining %d, got %d", i+1, 3-(i+1), result.Remaining)
		}
	}

	result := limiter.Check("signup:1.2.3.4", 3, time.Hour)
	if result.Allowed {
		t.Error("Fourth attempt should be blocked")
	}
	if result.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", result.Remaining)
	}
	if result.ResetAt.IsZero() {
		t.Error("Expected ResetAt to be set on a blocked attempt")
	}
}

func TestRateLimiter_IdentifiersAreIndependent(t *testing.T) {
	limiter := newTestLimiter(t)

	limiter.Check("forgot-password:1.1.1.1:a@x.io", 1, time.Hour)

	result := limiter.Check("forgot-password:2.2.2.2:a@x.io", 1, time.Hour)
	if !result.Allowed {
		t.Error("A different identifier should have its own window")
	}
}

func TestRateLimiter_ExpiredWindowStartsFresh(t *testing.T) {
	limiter := newTestLimiter(t)

	for i := 0; i < 3; i++ {
		limiter.Check("k", 2, 10*time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)

	result := limiter.Check("k", 2, 10*time.Millisecond)
	if !result.Allowed {
		t.Error("Expected a fresh window after expiry")
	}
	if result.Remaining != 1 {
		t.Errorf("Expected remaining 1 on a fresh window, got %d", result.Remaining)
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	limiter := newTestLimiter(t)

	limiter.Check("k", 1, time.Hour)
	limiter.Check("k", 1, time.Hour)
	limiter.Reset("k")

	if result := limiter.Check("k", 1, time.Hour); !result.Allowed {
		t.Error("Expected Reset to clear the window")
	}
}

func TestRateLimiter_SweepRemovesExpiredEntries(t *testing.T) {
	limiter := newTestLimiter(t)

	limiter.Check("stale", 5, time.Millisecond)
	limiter.Check("live", 5, time.Hour)

	limiter.sweep(time.Now().Add(time.Second))

	limiter.mu.Lock()
	_, staleKept := limiter.entries["stale"]
	_, liveKept := limiter.entries["live"]
	limiter.mu.Unlock()

	if staleKept {
		t.Error("Expected expired entry to be swept")
	}
	if !liveKept {
		t.Error("Expected live entry to survive the sweep")
	}
}

func TestRateLimitResult_RetryAfterMinutes(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		resetAt time.Time
		want    int
	}{
		{"rounds up partial minutes", now.Add(61 * time.Second), 2},
		{"exact minute", now.Add(time.Minute), 1},
		{"already reset", now.Add(-time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RateLimitResult{ResetAt: tt.resetAt}
			if got := result.RetryAfterMinutes(now); got != tt.want {
				t.Errorf("RetryAfterMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}
