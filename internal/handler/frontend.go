// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers for the public site and its
// small token-authenticated API.
package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pidlozhevich/lawsite/internal/blog"
	"github.com/pidlozhevich/lawsite/internal/i18n"
	"github.com/pidlozhevich/lawsite/internal/middleware"
	"github.com/pidlozhevich/lawsite/internal/render"
	"github.com/pidlozhevich/lawsite/internal/seo"
)

// Frontend serves the public pages.
type Frontend struct {
	renderer   *render.Renderer
	blocks     *render.BlockRenderer
	blog       *blog.Service
	translator *i18n.Translator
	static     *StaticPages
	siteURL    string
}

// NewFrontend creates the public site handler.
func NewFrontend(
	renderer *render.Renderer,
	blogService *blog.Service,
	tr *i18n.Translator,
	static *StaticPages,
	siteURL string,
) *Frontend {
	return &Frontend{
		renderer:   renderer,
		blocks:     render.NewBlockRenderer(),
		blog:       blogService,
		translator: tr,
		static:     static,
		siteURL:    siteURL,
	}
}

// PostView is a post prepared for template rendering.
type PostView struct {
	Title         string
	Slug          string
	Excerpt       string
	PublishedDate string
	Tags          []string
	CoverImage    string
	Author        string
	ReadTime      int
	Content       template.HTML
}

func listViews(posts []blog.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		views = append(views, PostView{
			Title:         p.Title,
			Slug:          p.Slug,
			Excerpt:       p.Excerpt,
			PublishedDate: p.PublishedDate,
			Tags:          p.Tags,
			CoverImage:    p.CoverImage,
			Author:        p.Author,
			ReadTime:      p.ReadTime,
		})
	}
	return views
}

func (h *Frontend) page(w http.ResponseWriter, r *http.Request, name, titleKey string, data any) {
	locale := middleware.GetLocale(r)
	err := h.renderer.Render(w, name, render.TemplateData{
		Title:       h.translator.T(locale, titleKey),
		Description: h.translator.T(locale, "site.description"),
		Locale:      locale,
		Path:        r.URL.Path,
		Data:        data,
	})
	if err != nil {
		slog.Error("template rendering failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Home handles GET /.
func (h *Frontend) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.GetPosts(r.Context())
	if err != nil {
		slog.Error("failed to load posts for homepage", "error", err)
		posts = nil
	}
	if len(posts) > 3 {
		posts = posts[:3]
	}
	h.page(w, r, "home", "site.title", map[string]any{
		"RecentPosts": listViews(posts),
	})
}

// BlogIndex handles GET /blog.
func (h *Frontend) BlogIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.GetPosts(r.Context())
	if err != nil {
		slog.Error("failed to load posts", "error", err)
		posts = nil
	}
	h.page(w, r, "blog", "blog.title", map[string]any{
		"Posts": listViews(posts),
	})
}

// BlogPost handles GET /blog/{slug}.
func (h *Frontend) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.blog.GetPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, blog.ErrPostNotFound) {
			h.NotFound(w, r)
			return
		}
		slog.Error("failed to load post", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := PostView{
		Title:         post.Title,
		Slug:          post.Slug,
		Excerpt:       post.Excerpt,
		PublishedDate: post.PublishedDate,
		Tags:          post.Tags,
		CoverImage:    post.CoverImage,
		Author:        post.Author,
		ReadTime:      post.ReadTime,
		Content:       h.blocks.Render(post.Content),
	}

	locale := middleware.GetLocale(r)
	err = h.renderer.Render(w, "post", render.TemplateData{
		Title:       post.Title,
		Description: post.Excerpt,
		Locale:      locale,
		Path:        r.URL.Path,
		Data:        map[string]any{"Post": view},
	})
	if err != nil {
		slog.Error("template rendering failed", "template", "post", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Contacts handles GET /contacts.
func (h *Frontend) Contacts(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "contacts", "contacts.title", nil)
}

// Privacy handles GET /privacy.
func (h *Frontend) Privacy(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)
	content, ok := h.static.Get("privacy", locale)
	if !ok {
		h.NotFound(w, r)
		return
	}
	h.page(w, r, "privacy", "nav.privacy", map[string]any{
		"Content": content,
	})
}

// NotFound renders the localized 404 page.
func (h *Frontend) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	h.page(w, r, "404", "notfound.title", nil)
}

// Sitemap handles GET /sitemap.xml.
func (h *Frontend) Sitemap(w http.ResponseWriter, r *http.Request) {
	builder := seo.NewSitemapBuilder(h.siteURL)
	builder.AddHomepage()
	builder.AddStaticPage("/blog")
	builder.AddStaticPage("/contacts")
	builder.AddStaticPage("/privacy")

	posts, err := h.blog.GetPosts(r.Context())
	if err != nil {
		slog.Error("failed to load posts for sitemap", "error", err)
	}
	for _, p := range posts {
		builder.AddPost(seo.SitemapPost{Slug: p.Slug, PublishedDate: p.PublishedDate})
	}

	out, err := builder.Build()
	if err != nil {
		slog.Error("sitemap generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// Robots handles GET /robots.txt.
func (h *Frontend) Robots(w http.ResponseWriter, r *http.Request) {
	out := seo.NewRobotsBuilder(seo.RobotsConfig{SiteURL: h.siteURL}).Build()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}
