// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pidlozhevich/lawsite/internal/blog"
	"github.com/pidlozhevich/lawsite/internal/cache"
	"github.com/pidlozhevich/lawsite/internal/middleware"
	"github.com/pidlozhevich/lawsite/internal/notion"
	"github.com/pidlozhevich/lawsite/internal/render"
	"github.com/pidlozhevich/lawsite/web"
)

// siteSource serves two fully populated posts for page rendering tests.
type siteSource struct{}

func (s *siteSource) ListChildPages(context.Context, string) ([]notion.PageRef, error) {
	return []notion.PageRef{
		{ID: "page-alimony", Title: "Взыскание алиментов"},
		{ID: "page-contracts", Title: "Проверка договора"},
	}, nil
}

func (s *siteSource) GetPage(_ context.Context, pageID string) (*notion.Page, error) {
	page := &notion.Page{
		ID:         pageID,
		Properties: map[string]notion.Property{},
	}
	switch pageID {
	case "page-alimony":
		page.Properties["title"] = notion.Property{
			Title: []notion.RichText{{PlainText: "Взыскание алиментов"}},
		}
		page.Properties["Slug"] = notion.Property{
			RichText: []notion.RichText{{PlainText: "vzyskanie-alimentov"}},
		}
		page.Properties["Excerpt"] = notion.Property{
			RichText: []notion.RichText{{PlainText: "Как взыскать алименты через суд."}},
		}
		page.Properties["Published Date"] = notion.Property{
			Date: &notion.DateValue{Start: "2026-02-10"},
		}
	case "page-contracts":
		page.Properties["title"] = notion.Property{
			Title: []notion.RichText{{PlainText: "Проверка договора"}},
		}
		page.Properties["Slug"] = notion.Property{
			RichText: []notion.RichText{{PlainText: "proverka-dogovora"}},
		}
		page.Properties["Published Date"] = notion.Property{
			Date: &notion.DateValue{Start: "2026-01-05"},
		}
	}
	return page, nil
}

func (s *siteSource) GetBlockChildren(context.Context, string) ([]notion.Block, error) {
	return []notion.Block{
		{
			ID:   "b1",
			Type: notion.BlockParagraph,
			Paragraph: &notion.RichTextBlock{
				RichText: []notion.RichText{{PlainText: "Порядок взыскания алиментов."}},
			},
		},
	}, nil
}

func testSite(t *testing.T) *chi.Mux {
	t.Helper()

	tr := testTranslator(t)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, Translator: tr})
	if err != nil {
		t.Fatalf("render.New failed: %v", err)
	}

	contentFS, err := fs.Sub(web.Content, "content")
	if err != nil {
		t.Fatalf("content fs: %v", err)
	}
	static, err := LoadStaticPages(contentFS)
	if err != nil {
		t.Fatalf("LoadStaticPages failed: %v", err)
	}

	backend := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { backend.Close() })
	svc := blog.NewService(&siteSource{}, "root", backend, time.Minute)

	h := NewFrontend(renderer, svc, tr, static, "https://example.by")

	r := chi.NewRouter()
	r.Use(middleware.Locale(tr, "ru"))
	r.Get("/", h.Home)
	r.Get("/blog", h.BlogIndex)
	r.Get("/blog/{slug}", h.BlogPost)
	r.Get("/contacts", h.Contacts)
	r.Get("/privacy", h.Privacy)
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
	r.NotFound(h.NotFound)
	return r
}

func get(t *testing.T, r *chi.Mux, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHomeShowsRecentPosts(t *testing.T) {
	r := testSite(t)

	rec := get(t, r, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()

	if !strings.Contains(body, `lang="ru"`) {
		t.Error("expected Russian page language")
	}
	if !strings.Contains(body, "/blog/vzyskanie-alimentov") {
		t.Error("expected link to the newest post")
	}
	if !strings.Contains(body, `action="/api/callback"`) {
		t.Error("expected callback form")
	}
}

func TestBlogIndexListsPostsNewestFirst(t *testing.T) {
	r := testSite(t)

	body := get(t, r, "/blog", nil).Body.String()

	first := strings.Index(body, "vzyskanie-alimentov")
	second := strings.Index(body, "proverka-dogovora")
	if first < 0 || second < 0 {
		t.Fatalf("expected both post links, got:\n%s", body)
	}
	if first > second {
		t.Error("expected the newer post listed first")
	}
	if !strings.Contains(body, "10.02.2026") {
		t.Error("expected ru-formatted publication date")
	}
}

func TestBlogPostRendersContent(t *testing.T) {
	r := testSite(t)

	rec := get(t, r, "/blog/vzyskanie-alimentov", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()

	if !strings.Contains(body, "Порядок взыскания алиментов.") {
		t.Error("expected rendered paragraph content")
	}
	if !strings.Contains(body, "<h1>Взыскание алиментов</h1>") {
		t.Error("expected post title heading")
	}
}

func TestBlogPostUnknownSlugRenders404(t *testing.T) {
	r := testSite(t)

	rec := get(t, r, "/blog/no-such-post", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Страница не найдена") {
		t.Error("expected localized 404 body")
	}
}

func TestLocaleQuerySwitchesLanguage(t *testing.T) {
	r := testSite(t)

	rec := get(t, r, "/?lang=en", nil)
	body := rec.Body.String()
	if !strings.Contains(body, `lang="en"`) {
		t.Error("expected English page language")
	}
	if !strings.Contains(body, "Attorney in Minsk") {
		t.Error("expected English hero title")
	}

	var gotCookie bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.LocaleCookieName && c.Value == "en" {
			gotCookie = true
		}
	}
	if !gotCookie {
		t.Error("expected locale cookie to be set")
	}
}

func TestPrivacyServesLocalizedMarkdown(t *testing.T) {
	r := testSite(t)

	body := get(t, r, "/privacy", nil).Body.String()
	if !strings.Contains(body, "Политика обработки персональных данных") {
		t.Error("expected Russian privacy heading")
	}

	body = get(t, r, "/privacy?lang=be", nil).Body.String()
	if !strings.Contains(body, "Палітыка апрацоўкі персанальных даных") {
		t.Error("expected Belarusian privacy heading")
	}
}

func TestContactsPage(t *testing.T) {
	r := testSite(t)

	body := get(t, r, "/contacts", nil).Body.String()
	if !strings.Contains(body, `action="/api/callback"`) {
		t.Error("expected callback form on contacts page")
	}
}

func TestSitemapIncludesPosts(t *testing.T) {
	r := testSite(t)

	rec := get(t, r, "/sitemap.xml", nil)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("Content-Type = %q, want application/xml", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "https://example.by/blog/vzyskanie-alimentov") {
		t.Error("expected post URL in sitemap")
	}
	if !strings.Contains(body, "<lastmod>2026-02-10</lastmod>") {
		t.Error("expected lastmod from publication date")
	}
}

func TestRobots(t *testing.T) {
	r := testSite(t)

	body := get(t, r, "/robots.txt", nil).Body.String()
	if !strings.Contains(body, "Disallow: /api/") {
		t.Error("expected /api/ disallowed")
	}
	if !strings.Contains(body, "Sitemap: https://example.by/sitemap.xml") {
		t.Error("expected sitemap reference")
	}
}
