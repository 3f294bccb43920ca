package middleware

import (
	"testing"
)

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	rl := NewRateLimiter(10)
	for i := 0; i < 10; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request beyond burst should be denied")
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1)
	if !rl.allow("10.0.0.1") {
		t.Fatal("first client's first request should pass")
	}
	if rl.allow("10.0.0.1") {
		t.Error("first client should be limited")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("second client must have its own budget")
	}
}
