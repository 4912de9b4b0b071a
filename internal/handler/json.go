// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
)

// The API endpoints (callback intake, cache invalidation, cron trigger,
// health) all answer with a flat JSON object carrying a success flag, so
// the callback form script can branch on a single field.

func writeJSON(w http.ResponseWriter, statusCode int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeJSONError reports a failed request with a visitor-facing message.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

// writeJSONSuccess reports a completed request, merging payload fields
// alongside the success flag.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	payload := map[string]any{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	writeJSON(w, http.StatusOK, payload)
}
