// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadStaticPages(t *testing.T) {
	fsys := fstest.MapFS{
		"privacy.ru.md": {Data: []byte("# Политика\n\nТекст политики.")},
		"privacy.en.md": {Data: []byte("# Policy\n\nPolicy text.")},
		"notes.txt":     {Data: []byte("ignored")},
		"weird.md":      {Data: []byte("no locale suffix, ignored")},
	}

	sp, err := LoadStaticPages(fsys)
	if err != nil {
		t.Fatalf("LoadStaticPages failed: %v", err)
	}

	ru, ok := sp.Get("privacy", "ru")
	if !ok {
		t.Fatal("privacy/ru not loaded")
	}
	if !strings.Contains(string(ru), "<h1>Политика</h1>") {
		t.Errorf("markdown not rendered: %q", ru)
	}

	en, ok := sp.Get("privacy", "en")
	if !ok || !strings.Contains(string(en), "Policy text") {
		t.Errorf("privacy/en = %q, ok = %v", en, ok)
	}

	// Missing locale falls back to the default locale
	be, ok := sp.Get("privacy", "be")
	if !ok || be != ru {
		t.Errorf("privacy/be should fall back to ru content")
	}

	if _, ok := sp.Get("imprint", "ru"); ok {
		t.Error("unknown page must not resolve")
	}
}

func TestLoadStaticPagesSanitizes(t *testing.T) {
	fsys := fstest.MapFS{
		"privacy.ru.md": {Data: []byte("Text <script>alert(1)</script> more")},
	}

	sp, err := LoadStaticPages(fsys)
	if err != nil {
		t.Fatalf("LoadStaticPages failed: %v", err)
	}

	content, _ := sp.Get("privacy", "ru")
	if strings.Contains(string(content), "<script>") {
		t.Errorf("script tag survived sanitization: %q", content)
	}
}
