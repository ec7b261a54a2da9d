package utils

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("client") {
			t.Fatalf("request %d must be allowed", i+1)
		}
	}

	if rl.Allow("client") {
		t.Error("request over the limit must be rejected")
	}
}

func TestRateLimiterKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("first") {
		t.Fatal("first client must be allowed")
	}
	if !rl.Allow("second") {
		t.Error("second client must not be affected by the first")
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	rl.Allow("client")
	if rl.Allow("client") {
		t.Fatal("second request must be rejected")
	}

	rl.Reset("client")
	if !rl.Allow("client") {
		t.Error("request after reset must be allowed")
	}
}

func TestRateLimiterGetRemaining(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	rl.Allow("client")
	rl.Allow("client")

	if remaining := rl.GetRemaining("client"); remaining != 3 {
		t.Errorf("GetRemaining = %d, want 3", remaining)
	}
}
