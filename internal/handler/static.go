// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pidlozhevich/lawsite/internal/i18n"
)

// StaticPages holds per-locale markdown content rendered to sanitized HTML
// once at startup. File naming: <name>.<locale>.md.
type StaticPages struct {
	pages map[string]map[string]template.HTML // name -> locale -> html
}

// LoadStaticPages renders every markdown file in the content filesystem.
func LoadStaticPages(contentFS fs.FS) (*StaticPages, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy := bluemonday.UGCPolicy()

	sp := &StaticPages{pages: make(map[string]map[string]template.HTML)}

	entries, err := fs.ReadDir(contentFS, ".")
	if err != nil {
		return nil, fmt.Errorf("reading content dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		// privacy.ru.md -> name "privacy", locale "ru"
		parts := strings.Split(strings.TrimSuffix(entry.Name(), ".md"), ".")
		if len(parts) != 2 || !i18n.IsSupported(parts[1]) {
			continue
		}
		name, locale := parts[0], parts[1]

		raw, err := fs.ReadFile(contentFS, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := md.Convert(raw, &buf); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", entry.Name(), err)
		}

		if sp.pages[name] == nil {
			sp.pages[name] = make(map[string]template.HTML)
		}
		sp.pages[name][locale] = template.HTML(policy.SanitizeBytes(buf.Bytes()))
	}

	return sp, nil
}

// Get returns the page content for a locale, falling back to the default
// locale. The second return is false when the page does not exist at all.
func (sp *StaticPages) Get(name, locale string) (template.HTML, bool) {
	locales, ok := sp.pages[name]
	if !ok {
		return "", false
	}
	if content, ok := locales[locale]; ok {
		return content, true
	}
	content, ok := locales[i18n.DefaultLocale]
	return content, ok
}
