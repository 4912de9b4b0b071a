// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/pidlozhevich/lawsite/internal/i18n"
	"github.com/pidlozhevich/lawsite/internal/middleware"
	"github.com/pidlozhevich/lawsite/internal/store"
	"github.com/pidlozhevich/lawsite/internal/util"
)

// CallbackHandler accepts callback request submissions from the contact
// form and persists them for follow-up.
type CallbackHandler struct {
	queries    *store.Queries
	translator *i18n.Translator
}

// NewCallbackHandler creates a new callback handler.
func NewCallbackHandler(db *sql.DB, tr *i18n.Translator) *CallbackHandler {
	return &CallbackHandler{
		queries:    store.New(db),
		translator: tr,
	}
}

// Submit handles POST /api/callback. Validation failures return 400 with a
// field-specific message; a store failure returns a generic 500 and the
// visitor is expected to resubmit.
func (h *CallbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, h.translator.T(locale, "form.error"))
		return
	}

	form := CallbackForm{
		Name:    r.PostFormValue("name"),
		Phone:   r.PostFormValue("phone"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
		Consent: r.PostFormValue("consent") == "on" || r.PostFormValue("consent") == "true",
	}

	if err := form.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, h.translator.T(locale, err.Error()))
		return
	}

	callback, err := h.queries.CreateCallback(r.Context(), store.CreateCallbackParams{
		ClientName:  form.Name,
		ClientPhone: form.Phone,
		ClientEmail: util.NullStringFromValue(form.Email),
		Message:     util.NullStringFromValue(form.Message),
		Status:      store.CallbackStatusPending,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to store callback request",
			"error", err,
			"ip", util.ClientIP(r),
		)
		writeJSONError(w, http.StatusInternalServerError, h.translator.T(locale, "form.error"))
		return
	}

	slog.Info("callback request received",
		"callback_id", callback.ID,
		"ip", util.ClientIP(r),
	)
	writeJSONSuccess(w, map[string]any{
		"message": h.translator.T(locale, "form.success"),
	})
}
