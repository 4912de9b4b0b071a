// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runSecurityHeaders(cfg SecurityHeadersConfig) http.Header {
	h := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec.Header()
}

func TestSecurityHeadersProduction(t *testing.T) {
	headers := runSecurityHeaders(DefaultSecurityHeadersConfig(false))

	if got := headers.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := headers.Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	hsts := headers.Get("Strict-Transport-Security")
	if !strings.Contains(hsts, "max-age=31536000") || !strings.Contains(hsts, "includeSubDomains") {
		t.Errorf("Strict-Transport-Security = %q", hsts)
	}
	csp := headers.Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'self'") {
		t.Errorf("CSP missing default-src: %q", csp)
	}
	if !strings.Contains(csp, "img-src 'self' data: https:") {
		t.Errorf("CSP must allow remote images for post content: %q", csp)
	}
	if headers.Get("Referrer-Policy") == "" {
		t.Error("Referrer-Policy not set")
	}
	if headers.Get("Permissions-Policy") == "" {
		t.Error("Permissions-Policy not set")
	}
}

func TestSecurityHeadersDevelopmentSkipsHSTS(t *testing.T) {
	headers := runSecurityHeaders(DefaultSecurityHeadersConfig(true))

	if got := headers.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS must be off in development, got %q", got)
	}
}

func TestBuildCSPOrderIsStable(t *testing.T) {
	directives := map[string]string{
		"script-src":  "'self'",
		"default-src": "'self'",
	}
	want := "default-src 'self'; script-src 'self'"
	for i := 0; i < 10; i++ {
		if got := buildCSP(directives); got != want {
			t.Fatalf("buildCSP = %q, want %q", got, want)
		}
	}
}
