// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package blog turns Notion pages into canonical blog posts and serves them
// through a time-bounded snapshot cache.
package blog

import "github.com/pidlozhevich/lawsite/internal/notion"

// Post is the normalized, renderer-ready representation of one article.
// A Post is constructed once per fetch cycle and never mutated; a cache
// refresh replaces the whole snapshot.
type Post struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Excerpt       string         `json:"excerpt"`
	Content       []notion.Block `json:"content"`
	PublishedDate string         `json:"published_date"`
	Tags          []string       `json:"tags"`
	CoverImage    string         `json:"cover_image,omitempty"`
	Author        string         `json:"author"`
	ReadTime      int            `json:"read_time"`
}
