package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("secret_test", WithBaseURL(srv.URL))
}

func TestGetBlockChildren_Pagination(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret_test" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got == "" {
			t.Error("missing Notion-Version header")
		}

		calls++
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("start_cursor") {
		case "":
			fmt.Fprint(w, `{"results":[{"id":"b1","type":"paragraph","paragraph":{"rich_text":[]}}],"next_cursor":"cur2","has_more":true}`)
		case "cur2":
			fmt.Fprint(w, `{"results":[{"id":"b2","type":"divider"}],"next_cursor":null,"has_more":false}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("start_cursor"))
		}
	})

	blocks, err := client.GetBlockChildren(context.Background(), "root")
	if err != nil {
		t.Fatalf("GetBlockChildren: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 requests, got %d", calls)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].ID != "b1" || blocks[1].Type != BlockDivider {
		t.Errorf("unexpected blocks: %+v", blocks)
	}
}

func TestListChildPages_FiltersChildPages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[
			{"id":"p1","type":"child_page","child_page":{"title":"First post"}},
			{"id":"x1","type":"paragraph","paragraph":{"rich_text":[]}},
			{"id":"p2","type":"child_page","child_page":{"title":"Second post"}}
		],"has_more":false}`)
	})

	refs, err := client.ListChildPages(context.Background(), "root")
	if err != nil {
		t.Fatalf("ListChildPages: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 page refs, got %d", len(refs))
	}
	if refs[0].Title != "First post" || refs[1].ID != "p2" {
		t.Errorf("unexpected refs: %+v", refs)
	}
}

func TestListChildPages_EmptyRoot(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[],"has_more":false}`)
	})

	refs, err := client.ListChildPages(context.Background(), "root")
	if err != nil {
		t.Fatalf("ListChildPages: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected no refs, got %d", len(refs))
	}
}

func TestGetPage_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":"object_not_found","message":"Could not find page."}`)
	})

	_, err := client.GetPage(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPage_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"code":"unauthorized","message":"API token is invalid."}`)
	})

	_, err := client.GetPage(context.Background(), "p1")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestGetBlockChildren_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed server simulates an unreachable API
	client := NewClient("secret_test", WithBaseURL(srv.URL))

	_, err := client.GetBlockChildren(context.Background(), "root")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestGetPage_DecodesProperties(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id":"p1",
			"created_time":"2026-01-15T10:00:00.000Z",
			"cover":{"type":"external","external":{"url":"https://img.example/cover.jpg"}},
			"properties":{
				"title":{"type":"title","title":[{"plain_text":"Hello","annotations":{}}]},
				"Tags":{"type":"multi_select","multi_select":[{"name":"family-law"}]}
			}
		}`)
	})

	page, err := client.GetPage(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.Cover.URLString() != "https://img.example/cover.jpg" {
		t.Errorf("unexpected cover URL %q", page.Cover.URLString())
	}
	if len(page.Properties["title"].Title) != 1 {
		t.Error("expected title property to decode")
	}
	if page.Properties["Tags"].MultiSelect[0].Name != "family-law" {
		t.Error("expected multi_select property to decode")
	}
	if page.CreatedTime.IsZero() {
		t.Error("expected created_time to decode")
	}
}
