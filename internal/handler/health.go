// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/pidlozhevich/lawsite/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// Health handles GET /health. Reports degraded with 503 when the
// database does not respond.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}
