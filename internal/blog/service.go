// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pidlozhevich/lawsite/internal/cache"
	"github.com/pidlozhevich/lawsite/internal/notion"
)

// CacheTagPosts is the invalidation tag covering the rendered post list.
const CacheTagPosts = "blog-posts"

// maxNestingDepth bounds child block resolution. Three levels covers every
// layout the workspace produces (toggle > list > paragraph).
const maxNestingDepth = 3

// fetchWorkers bounds concurrent page fetches during a refresh.
const fetchWorkers = 4

// ContentSource is the slice of the Notion API the blog needs. The HTTP
// client satisfies it; tests substitute fixtures.
type ContentSource interface {
	ListChildPages(ctx context.Context, rootID string) ([]notion.PageRef, error)
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
	GetBlockChildren(ctx context.Context, blockID string) ([]notion.Block, error)
}

// ErrPostNotFound is returned by GetPostBySlug when no post matches.
var ErrPostNotFound = errors.New("blog: post not found")

// Service turns a Notion workspace subtree into a cached, ordered list of
// posts. Reads hit the cache; a miss triggers a single-flight refresh.
type Service struct {
	source ContentSource
	rootID string
	posts  *cache.TypedCache[[]Post]

	// mu serializes refreshes so a burst of cold reads performs one
	// upstream crawl instead of many.
	mu sync.Mutex
}

// NewService builds a blog service over the given source and cache backend.
// ttl bounds how long a crawled post list is served without re-checking the
// source; explicit invalidation drops it sooner.
func NewService(source ContentSource, rootID string, backend cache.Cache, ttl time.Duration) *Service {
	return &Service{
		source: source,
		rootID: rootID,
		posts:  cache.NewTypedCache[[]Post](backend, ttl),
	}
}

func cacheKey(tag string) string {
	return "posts:" + tag
}

// GetPosts returns all posts, newest first. Cached results are served
// directly; on a miss the workspace is re-crawled. When the source is
// unreachable an empty list is returned and nothing is cached, so the next
// request retries.
func (s *Service) GetPosts(ctx context.Context) ([]Post, error) {
	key := cacheKey(CacheTagPosts)

	if posts, ok := s.posts.Get(ctx, key); ok {
		return *posts, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have finished the refresh while we waited.
	if posts, ok := s.posts.Get(ctx, key); ok {
		return *posts, nil
	}

	posts, err := s.refresh(ctx)
	if err != nil {
		if errors.Is(err, notion.ErrSourceUnavailable) {
			slog.Error("content source unavailable, serving empty post list", "error", err)
			return []Post{}, nil
		}
		return nil, err
	}

	if err := s.posts.Set(ctx, key, &posts); err != nil {
		slog.Warn("failed to cache posts", "error", err)
	}
	return posts, nil
}

// GetPostBySlug returns the post with the given slug or ErrPostNotFound.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	posts, err := s.GetPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug {
			return &posts[i], nil
		}
	}
	return nil, ErrPostNotFound
}

// CountPosts returns the number of published posts.
func (s *Service) CountPosts(ctx context.Context) (int, error) {
	posts, err := s.GetPosts(ctx)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// Invalidate drops the cached post list for the given tag. An empty tag
// means CacheTagPosts. The next read refreshes from the source.
func (s *Service) Invalidate(ctx context.Context, tag string) error {
	if tag == "" {
		tag = CacheTagPosts
	}
	if err := s.posts.Delete(ctx, cacheKey(tag)); err != nil {
		return fmt.Errorf("invalidate %q: %w", tag, err)
	}
	slog.Info("posts cache invalidated", "tag", tag)
	return nil
}

// refresh crawls the workspace subtree and rebuilds the post list. Pages
// that fail to fetch or normalize are dropped with a log line; one broken
// page must not take down the whole listing.
func (s *Service) refresh(ctx context.Context) ([]Post, error) {
	refs, err := s.source.ListChildPages(ctx, s.rootID)
	if err != nil {
		return nil, fmt.Errorf("list child pages: %w", err)
	}

	type result struct {
		idx  int
		post *Post
	}

	jobs := make(chan int)
	results := make(chan result, len(refs))
	var wg sync.WaitGroup

	for w := 0; w < fetchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				post := s.fetchPost(ctx, refs[idx])
				results <- result{idx: idx, post: post}
			}
		}()
	}

	for idx := range refs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	close(results)

	posts := make([]Post, 0, len(refs))
	for res := range results {
		if res.post != nil {
			posts = append(posts, *res.post)
		}
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedDate > posts[j].PublishedDate
	})
	return posts, nil
}

// fetchPost loads one page with its block tree and normalizes it. Returns
// nil when the page cannot be used.
func (s *Service) fetchPost(ctx context.Context, ref notion.PageRef) *Post {
	page, err := s.source.GetPage(ctx, ref.ID)
	if err != nil {
		slog.Warn("failed to fetch page, skipping", "page_id", ref.ID, "error", err)
		return nil
	}

	blocks, err := s.fetchBlocks(ctx, ref.ID, 0)
	if err != nil {
		slog.Warn("failed to fetch page blocks, skipping", "page_id", ref.ID, "error", err)
		return nil
	}

	post, err := Normalize(page, blocks)
	if err != nil {
		slog.Warn("failed to normalize page, skipping", "page_id", ref.ID, "error", err)
		return nil
	}
	return post
}

// fetchBlocks loads the children of a block and recursively resolves
// nested children up to maxNestingDepth. Deeper content is truncated.
func (s *Service) fetchBlocks(ctx context.Context, blockID string, depth int) ([]notion.Block, error) {
	blocks, err := s.source.GetBlockChildren(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if depth >= maxNestingDepth {
		return blocks, nil
	}

	for i := range blocks {
		if !blocks[i].HasChildren {
			continue
		}
		children, err := s.fetchBlocks(ctx, blocks[i].ID, depth+1)
		if err != nil {
			slog.Warn("failed to fetch nested blocks", "block_id", blocks[i].ID, "error", err)
			continue
		}
		blocks[i].Children = children
	}
	return blocks, nil
}
