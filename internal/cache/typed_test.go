package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testPost struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func TestTypedCache_SetGet(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()

	tc := NewTypedCache[testPost](backend, time.Hour)
	ctx := context.Background()

	post := &testPost{Title: "Hello", Slug: "hello"}
	if err := tc.Set(ctx, "post", post); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := tc.Get(ctx, "post")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Title != "Hello" || got.Slug != "hello" {
		t.Errorf("unexpected value: %+v", got)
	}
}

func TestTypedCache_Miss(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()

	tc := NewTypedCache[testPost](backend, time.Hour)

	if _, ok := tc.Get(context.Background(), "absent"); ok {
		t.Error("expected cache miss")
	}
}

func TestTypedCache_SliceValues(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()

	tc := NewTypedCache[[]testPost](backend, time.Hour)
	ctx := context.Background()

	posts := &[]testPost{{Title: "A", Slug: "a"}, {Title: "B", Slug: "b"}}
	if err := tc.Set(ctx, "posts", posts); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := tc.Get(ctx, "posts")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(*got) != 2 || (*got)[1].Slug != "b" {
		t.Errorf("unexpected slice: %+v", *got)
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()

	tc := NewTypedCache[testPost](backend, time.Hour)
	ctx := context.Background()

	calls := 0
	fn := func() (*testPost, error) {
		calls++
		return &testPost{Title: "Computed"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := tc.GetOrSet(ctx, "computed", fn)
		if err != nil {
			t.Fatalf("GetOrSet failed: %v", err)
		}
		if got.Title != "Computed" {
			t.Errorf("unexpected value: %+v", got)
		}
	}

	if calls != 1 {
		t.Errorf("expected compute function called once, got %d", calls)
	}
}

func TestTypedCache_GetOrSetError(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = backend.Close() }()

	tc := NewTypedCache[testPost](backend, time.Hour)

	wantErr := errors.New("source unavailable")
	_, err := tc.GetOrSet(context.Background(), "failing", func() (*testPost, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected compute error to propagate, got %v", err)
	}
}
