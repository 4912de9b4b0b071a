// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for locale detection,
// security headers, CSRF protection, and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pidlozhevich/lawsite/internal/i18n"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyLocale holds the resolved locale code for the request.
const ContextKeyLocale ContextKey = "locale"

// LocaleCookieName is the cookie name for the visitor's language preference.
const LocaleCookieName = "lawsite_lang"

// Locale creates middleware that resolves the request language.
// Priority order:
// 1. Query parameter ?lang=XX (explicit language switch, updates cookie)
// 2. Cookie preference
// 3. Accept-Language header
// 4. Default locale
func Locale(tr *i18n.Translator, defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := resolveLocale(w, r, tr, defaultLocale)
			ctx := context.WithValue(r.Context(), ContextKeyLocale, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLocale(w http.ResponseWriter, r *http.Request, tr *i18n.Translator, defaultLocale string) string {
	// 1. Explicit switch via query parameter, persisted in the cookie
	if queryLang := strings.ToLower(r.URL.Query().Get("lang")); queryLang != "" {
		if i18n.IsSupported(queryLang) {
			SetLocaleCookie(w, queryLang)
			return queryLang
		}
	}

	// 2. Cookie preference
	if cookie, err := r.Cookie(LocaleCookieName); err == nil {
		code := strings.ToLower(cookie.Value)
		if i18n.IsSupported(code) {
			return code
		}
	}

	// 3. Accept-Language header
	if acceptLang := r.Header.Get("Accept-Language"); acceptLang != "" {
		if matched := tr.MatchLocale(acceptLang); i18n.IsSupported(matched) {
			return matched
		}
	}

	return defaultLocale
}

// GetLocale retrieves the resolved locale from the request context.
func GetLocale(r *http.Request) string {
	if locale, ok := r.Context().Value(ContextKeyLocale).(string); ok {
		return locale
	}
	return i18n.DefaultLocale
}

// SetLocaleCookie sets the language preference cookie.
func SetLocaleCookie(w http.ResponseWriter, locale string) {
	cookie := &http.Cookie{
		Name:     LocaleCookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}
