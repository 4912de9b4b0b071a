// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
	pageSize       = 100
	requestTimeout = 15 * time.Second
)

// Sentinel errors. Callers treat a failed item as unavailable rather than
// aborting a whole listing.
var (
	// ErrNotFound indicates the requested page or block id does not exist
	// or the integration has no access to it.
	ErrNotFound = errors.New("notion: not found")

	// ErrSourceUnavailable indicates the content source could not be
	// reached or refused the request.
	ErrSourceUnavailable = errors.New("notion: source unavailable")
)

// Client calls the Notion REST API with a bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Notion API client.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// blockChildrenResponse is the wire format of GET /blocks/{id}/children.
type blockChildrenResponse struct {
	Results    []Block `json:"results"`
	NextCursor string  `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

// apiError is the wire format of a Notion error response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListChildPages returns references to the direct child pages of the given
// root page, in their Notion order. A root without child pages yields an
// empty slice, not an error.
func (c *Client) ListChildPages(ctx context.Context, rootID string) ([]PageRef, error) {
	blocks, err := c.GetBlockChildren(ctx, rootID)
	if err != nil {
		return nil, err
	}

	var refs []PageRef
	for _, b := range blocks {
		if b.Type != BlockChildPage {
			continue
		}
		ref := PageRef{ID: b.ID}
		if b.ChildPage != nil {
			ref.Title = b.ChildPage.Title
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// GetPage retrieves page metadata (properties, cover, created time).
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.get(ctx, "/pages/"+url.PathEscape(pageID), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetBlockChildren retrieves all direct children of a block, following
// pagination cursors until the listing is exhausted.
func (c *Client) GetBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var blocks []Block
	cursor := ""

	for {
		query := url.Values{}
		query.Set("page_size", fmt.Sprintf("%d", pageSize))
		if cursor != "" {
			query.Set("start_cursor", cursor)
		}

		var resp blockChildrenResponse
		if err := c.get(ctx, "/blocks/"+url.PathEscape(blockID)+"/children", query, &resp); err != nil {
			return nil, err
		}

		blocks = append(blocks, resp.Results...)

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return blocks, nil
}

// get performs one authenticated GET request and decodes the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrSourceUnavailable, err)
	}
	return nil
}

// statusError maps a non-200 response to a sentinel error, keeping the API's
// own error message for the logs.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiErr apiError
	detail := ""
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		detail = apiErr.Message
	}

	if resp.StatusCode == http.StatusNotFound {
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, detail)
		}
		return ErrNotFound
	}

	if detail != "" {
		return fmt.Errorf("%w: status %d: %s", ErrSourceUnavailable, resp.StatusCode, detail)
	}
	return fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
}
