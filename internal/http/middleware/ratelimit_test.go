package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	limiter := NewRateLimiter()
	for i := 0; i < 5; i++ {
		if !limiter.Allow("auth:1.2.3.4", 5, time.Minute) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("auth:1.2.3.4", 5, time.Minute) {
		t.Fatal("sixth request should be rejected")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewRateLimiter()
	for i := 0; i < 5; i++ {
		limiter.Allow("auth:1.2.3.4", 5, time.Minute)
	}
	if !limiter.Allow("auth:5.6.7.8", 5, time.Minute) {
		t.Fatal("a different client must not share the window")
	}
	if !limiter.Allow("default:1.2.3.4", 20, time.Minute) {
		t.Fatal("a different tier must not share the window")
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	limiter := NewRateLimiter()
	key := "auth:1.2.3.4"
	for i := 0; i < 5; i++ {
		limiter.Allow(key, 5, 10*time.Millisecond)
	}
	if limiter.Allow(key, 5, 10*time.Millisecond) {
		t.Fatal("window should be exhausted")
	}
	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow(key, 5, 10*time.Millisecond) {
		t.Fatal("window should have reset")
	}
}
