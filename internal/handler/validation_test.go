// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare local number", "291234567", "+375291234567", false},
		{"formatted local number", "(29) 123-45-67", "+375291234567", false},
		{"full international", "+375 (29) 123-45-67", "+375291234567", false},
		{"full without plus", "375291234567", "+375291234567", false},
		{"spaces and dashes", "29 123 45 67", "+375291234567", false},
		{"too short", "12345678", "", true},
		{"too long local", "2912345678", "", true},
		{"twelve digits wrong country", "441234567890", "", true},
		{"letters only", "call me", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrPhoneInvalid) {
					t.Errorf("NormalizePhone(%q) err = %v, want ErrPhoneInvalid", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func validForm() CallbackForm {
	return CallbackForm{
		Name:    "Ivan",
		Phone:   "+375 (29) 123-45-67",
		Consent: true,
	}
}

func TestCallbackFormValidate(t *testing.T) {
	t.Run("valid form normalizes phone", func(t *testing.T) {
		form := validForm()
		if err := form.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if form.Phone != "+375291234567" {
			t.Errorf("Phone = %q, want +375291234567", form.Phone)
		}
	})

	t.Run("name required", func(t *testing.T) {
		form := validForm()
		form.Name = "   "
		if err := form.Validate(); !errors.Is(err, ErrNameRequired) {
			t.Errorf("err = %v, want ErrNameRequired", err)
		}
	})

	t.Run("consent required", func(t *testing.T) {
		form := validForm()
		form.Consent = false
		if err := form.Validate(); !errors.Is(err, ErrConsentRequired) {
			t.Errorf("err = %v, want ErrConsentRequired", err)
		}
	})

	t.Run("bad email rejected", func(t *testing.T) {
		form := validForm()
		form.Email = "not-an-address"
		if err := form.Validate(); !errors.Is(err, ErrEmailInvalid) {
			t.Errorf("err = %v, want ErrEmailInvalid", err)
		}
	})

	t.Run("empty email allowed", func(t *testing.T) {
		form := validForm()
		form.Email = ""
		if err := form.Validate(); err != nil {
			t.Errorf("Validate failed: %v", err)
		}
	})

	t.Run("valid email kept", func(t *testing.T) {
		form := validForm()
		form.Email = "ivan@example.com"
		if err := form.Validate(); err != nil {
			t.Errorf("Validate failed: %v", err)
		}
	})
}
