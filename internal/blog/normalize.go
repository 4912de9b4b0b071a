// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package blog

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pidlozhevich/lawsite/internal/notion"
	"github.com/pidlozhevich/lawsite/internal/util"
)

// defaultAuthor is used when a page carries no author property.
const defaultAuthor = "Николай Пидложевич"

// excerptMaxLen is the excerpt cutoff when one is derived from content.
const excerptMaxLen = 150

// ErrPageUnusable signals that a page is missing the shape needed to build
// a post. The caller drops the page and continues with the batch.
var ErrPageUnusable = errors.New("blog: page unusable")

// Property name priority lists. The Notion schema is duck-typed: authors
// rename columns freely, so each field is resolved by trying several known
// names in order. The Russian names match the production workspace.
var (
	titlePropNames   = []string{"title", "Title", "Name"}
	excerptPropNames = []string{"Excerpt", "Description", "Summary", "Краткое_описание", "Описание"}
	tagsPropNames    = []string{"Tags", "Category"}
	authorPropNames  = []string{"Author", "Writer"}
)

// Normalize converts one fetched page plus its block tree into a Post.
// A page with no properties is unusable; everything else resolves through
// fallback chains so a half-filled page still yields a sensible post.
func Normalize(page *notion.Page, blocks []notion.Block) (*Post, error) {
	if page == nil || len(page.Properties) == 0 {
		return nil, ErrPageUnusable
	}

	title := resolveTitle(page)
	slug := resolveSlug(page, title)

	post := &Post{
		ID:            page.ID,
		Title:         title,
		Slug:          slug,
		Excerpt:       resolveExcerpt(page, blocks),
		Content:       blocks,
		PublishedDate: resolvePublishedDate(page),
		Tags:          resolveTags(page),
		CoverImage:    page.Cover.URLString(),
		Author:        resolveAuthor(page),
		ReadTime:      ReadTime(WordCount(blocks)),
	}
	return post, nil
}

// firstPlainText returns the first span's plain text from a rich text slice.
func firstPlainText(rts []notion.RichText) string {
	if len(rts) == 0 {
		return ""
	}
	return rts[0].PlainText
}

// resolveTitle tries the well-known title property names, then any property
// shaped like a title field, then falls back to "Untitled".
func resolveTitle(page *notion.Page) string {
	for _, name := range titlePropNames {
		if prop, ok := page.Properties[name]; ok {
			if t := firstPlainText(prop.Title); t != "" {
				return t
			}
		}
	}

	for _, prop := range page.Properties {
		if t := firstPlainText(prop.Title); t != "" {
			return t
		}
	}

	return "Untitled"
}

// resolveSlug uses an explicit Slug property when present, else slugifies
// the title, else falls back to the raw page id.
func resolveSlug(page *notion.Page, title string) string {
	if prop, ok := page.Properties["Slug"]; ok {
		if s := strings.TrimSpace(firstPlainText(prop.RichText)); s != "" {
			return s
		}
	}

	if s := util.Slugify(title); s != "" {
		return s
	}

	return page.ID
}

// resolveExcerpt tries the description-like properties, then derives an
// excerpt from the first paragraph, truncated at excerptMaxLen with a
// literal ellipsis suffix.
func resolveExcerpt(page *notion.Page, blocks []notion.Block) string {
	for _, name := range excerptPropNames {
		if prop, ok := page.Properties[name]; ok {
			if e := firstPlainText(prop.RichText); e != "" {
				return e
			}
		}
	}

	for i := range blocks {
		b := &blocks[i]
		if b.Type != notion.BlockParagraph || len(b.RichTexts()) == 0 {
			continue
		}

		var sb strings.Builder
		for _, rt := range b.RichTexts() {
			sb.WriteString(rt.PlainText)
		}
		full := sb.String()

		if runes := []rune(full); len(runes) > excerptMaxLen {
			return strings.TrimSpace(string(runes[:excerptMaxLen])) + "..."
		}
		return full
	}

	return ""
}

// resolvePublishedDate tries an explicit date property, a created-time
// property, the page's own creation timestamp, and finally the current
// time. The last resort fabricates a date, so it is logged.
func resolvePublishedDate(page *notion.Page) string {
	if prop, ok := page.Properties["Published Date"]; ok && prop.Date != nil && prop.Date.Start != "" {
		return prop.Date.Start
	}

	if prop, ok := page.Properties["Created"]; ok && prop.CreatedTime != "" {
		return prop.CreatedTime
	}

	if !page.CreatedTime.IsZero() {
		return page.CreatedTime.Format(time.RFC3339)
	}

	slog.Warn("page has no publish date anywhere, using current time", "page_id", page.ID)
	return time.Now().Format(time.RFC3339)
}

// resolveTags takes the first matching multi-select property.
func resolveTags(page *notion.Page) []string {
	for _, name := range tagsPropNames {
		prop, ok := page.Properties[name]
		if !ok || len(prop.MultiSelect) == 0 {
			continue
		}
		tags := make([]string, 0, len(prop.MultiSelect))
		for _, opt := range prop.MultiSelect {
			tags = append(tags, opt.Name)
		}
		return tags
	}
	return []string{}
}

// resolveAuthor takes the first matching text property, defaulting to the
// practice owner.
func resolveAuthor(page *notion.Page) string {
	for _, name := range authorPropNames {
		if prop, ok := page.Properties[name]; ok {
			if a := firstPlainText(prop.RichText); a != "" {
				return a
			}
		}
	}
	return defaultAuthor
}
