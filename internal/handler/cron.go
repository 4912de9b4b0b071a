// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pidlozhevich/lawsite/internal/service"
	"github.com/pidlozhevich/lawsite/internal/util"
)

// CronHandler exposes the weekly stats job over HTTP so an external
// scheduler can drive it in addition to the in-process cron.
type CronHandler struct {
	secret string
	isDev  bool
	stats  *service.StatsService
}

// NewCronHandler creates a new cron endpoint handler.
func NewCronHandler(secret string, isDev bool, stats *service.StatsService) *CronHandler {
	return &CronHandler{
		secret: secret,
		isDev:  isDev,
		stats:  stats,
	}
}

// WeeklyStats handles GET /api/cron/weekly-stats. The bearer secret is
// enforced outside development only, matching how a local run has no
// scheduler infrastructure to hold a secret.
func (h *CronHandler) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	if !h.isDev && !h.authorized(r) {
		slog.Warn("cron endpoint rejected", "ip", util.ClientIP(r))
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	report, err := h.stats.Record(r.Context())
	if err != nil {
		slog.Error("weekly stats run failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "stats run failed")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"report": report,
	})
}

func (h *CronHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return false
	}
	provided := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) == 1
}
