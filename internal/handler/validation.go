// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/mail"
	"strings"
)

// countryCallingCode prefixes local 9-digit numbers.
const countryCallingCode = "375"

// Validation failures carry a translation key so the form can show a
// field-specific message in the visitor's language.
var (
	ErrNameRequired    = errors.New("error.name_required")
	ErrPhoneInvalid    = errors.New("error.phone_invalid")
	ErrEmailInvalid    = errors.New("error.email_invalid")
	ErrConsentRequired = errors.New("error.consent_required")
)

// CallbackForm holds a submitted callback request before validation.
type CallbackForm struct {
	Name    string
	Phone   string
	Email   string
	Message string
	Consent bool
}

// Validate checks the form and normalizes its fields in place. The first
// failed check aborts; nothing is persisted on failure.
func (f *CallbackForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return ErrNameRequired
	}

	phone, err := NormalizePhone(f.Phone)
	if err != nil {
		return err
	}
	f.Phone = phone

	f.Email = strings.TrimSpace(f.Email)
	if f.Email != "" {
		if _, err := mail.ParseAddress(f.Email); err != nil {
			return ErrEmailInvalid
		}
	}

	if !f.Consent {
		return ErrConsentRequired
	}

	f.Message = strings.TrimSpace(f.Message)
	return nil
}

// NormalizePhone canonicalizes a phone number to "+<countrycode><digits>".
// After stripping every non-digit rune the input must be either a 9-digit
// local number or a 12-digit number already carrying the country code.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	switch {
	case len(d) == 9:
		return "+" + countryCallingCode + d, nil
	case len(d) == 12 && strings.HasPrefix(d, countryCallingCode):
		return "+" + d, nil
	}
	return "", ErrPhoneInvalid
}
