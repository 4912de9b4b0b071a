// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pidlozhevich/lawsite/internal/blog"
	"github.com/pidlozhevich/lawsite/internal/util"
)

// RevalidateHandler forces the posts cache to refresh on the next read.
// Editors hit it after changing content in the workspace.
type RevalidateHandler struct {
	token string
	blog  *blog.Service
}

// NewRevalidateHandler creates a new cache invalidation handler.
func NewRevalidateHandler(token string, blogService *blog.Service) *RevalidateHandler {
	return &RevalidateHandler{
		token: token,
		blog:  blogService,
	}
}

// Revalidate handles GET /api/revalidate. The secret is accepted either as
// a ?token= query parameter or as a bearer Authorization header. A
// mismatch returns 401 and leaves the cache untouched.
func (h *RevalidateHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		slog.Warn("cache invalidation rejected", "ip", util.ClientIP(r))
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tag := r.URL.Query().Get("tag")
	if tag == "" {
		tag = blog.CacheTagPosts
	}

	if err := h.blog.Invalidate(r.Context(), tag); err != nil {
		slog.Error("cache invalidation failed", "tag", tag, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "invalidation failed")
		return
	}

	writeJSONSuccess(w, map[string]any{
		"revalidated": true,
		"tag":         tag,
		"now":         time.Now().Format(time.RFC3339),
	})
}

func (h *RevalidateHandler) authorized(r *http.Request) bool {
	if h.token == "" {
		return false
	}

	provided := r.URL.Query().Get("token")
	if provided == "" {
		provided = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}

	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.token)) == 1
}
