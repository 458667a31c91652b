package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRateLimiterEnforcesLimit(t *testing.T) {
	rl := newRateLimiter(2, time.Minute, clientIPKey)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		if !rl.enforce(rec, req) {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	if rl.enforce(rec, req) {
		t.Fatal("third request should be rejected")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := newRateLimiter(1, time.Minute, clientIPKey)

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	if !rl.enforce(httptest.NewRecorder(), first) {
		t.Fatal("first client should be allowed")
	}

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	if !rl.enforce(httptest.NewRecorder(), second) {
		t.Fatal("second client should not share the first client's bucket")
	}
}

func TestSensitiveRateScope(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   sensitiveScope
	}{
		{http.MethodPost, "/api/v1/auth/login", sensitiveScopeAuth},
		{http.MethodPost, "/api/v1/auth/request-reset", sensitiveScopeAuth},
		{http.MethodPost, "/api/v1/auth/mfa/enable", sensitiveScopeAuth},
		{http.MethodPost, "/api/v1/pdi", sensitiveScopeActor},
		{http.MethodPost, "/api/v1/career/users/u1/progress", sensitiveScopeActor},
		{http.MethodPut, "/api/v1/career/users/u1/assign-track", sensitiveScopeActor},
		{http.MethodPut, "/api/v1/consensus/m1/complete", sensitiveScopeActor},
		{http.MethodGet, "/api/v1/career/users/u1/progress", sensitiveScopeNone},
		{http.MethodGet, "/api/v1/pdi", sensitiveScopeNone},
		{http.MethodPost, "/api/v1/evaluations/self", sensitiveScopeNone},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if got := sensitiveRateScope(req); got != tc.want {
			t.Fatalf("%s %s: expected scope %q, got %q", tc.method, tc.path, tc.want, got)
		}
	}
}

func TestAuthEmailKeyFallsBackToIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"User@Example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	if got := authEmailOrIPKey(req); got != "email:user@example.com" {
		t.Fatalf("expected lowercased email key, got %q", got)
	}

	noBody := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	noBody.RemoteAddr = "10.0.0.9:1234"
	if got := authEmailOrIPKey(noBody); got != "10.0.0.9" {
		t.Fatalf("expected IP fallback, got %q", got)
	}
}
