// Package listview implements the list management pattern the Cadence
// dashboards share: fetch a collection from a REST resource, cache it,
// filter and sort it in memory, and page through the result. The
// Controller ties the pieces together; each piece is also usable on
// its own.
package listview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Params are the query parameters of one list request. A zero Page
// means no pagination params are sent and the server may respond with
// a bare array.
type Params struct {
	Page     int
	PageSize int
	Search   string
}

// Page is one normalized list response. Bare-array responses and
// {results, count, next} envelopes both decode into it; for a bare
// array Count is the item count and Next is nil.
type Page[T any] struct {
	Items []T
	Count int
	Next  *string
}

type envelope[T any] struct {
	Results []T     `json:"results"`
	Count   int     `json:"count"`
	Next    *string `json:"next"`
}

// APIError is a non-2xx response. Message carries the server's error
// message verbatim so callers can surface it to the user unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorBody struct {
	Message string `json:"message"`
}

// Fetcher requests pages of one REST resource. It issues exactly one
// request per call and never retries; retry policy belongs to the
// caller, not this layer.
type Fetcher[T any] struct {
	http     *resty.Client
	resource string
}

// NewFetcher builds a fetcher for a resource path like "rooms". The
// resty client carries the base URL and any auth headers.
func NewFetcher[T any](client *resty.Client, resource string) *Fetcher[T] {
	return &Fetcher[T]{http: client, resource: resource}
}

// Fetch issues one request and returns the normalized page.
func (f *Fetcher[T]) Fetch(ctx context.Context, p Params) (*Page[T], error) {
	req := f.http.R().SetContext(ctx)
	if p.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(p.Page))
		if p.PageSize > 0 {
			req.SetQueryParam("page_size", strconv.Itoa(p.PageSize))
		}
	}
	if p.Search != "" {
		req.SetQueryParam("search", p.Search)
	}

	resp, err := req.Get(f.resource + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.resource, err)
	}
	return decodePage[T](resp)
}

// FetchAll assembles the full collection, following the envelope's
// next cursor until it is exhausted. A bare-array response is already
// the full collection and ends the loop immediately.
func (f *Fetcher[T]) FetchAll(ctx context.Context, search string) ([]T, error) {
	page, err := f.Fetch(ctx, Params{Search: search})
	if err != nil {
		return nil, err
	}

	items := page.Items
	next := page.Next
	for next != nil {
		resp, err := f.http.R().SetContext(ctx).Get(f.nextURL(*next))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", f.resource, err)
		}
		page, err := decodePage[T](resp)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		next = page.Next
	}
	return items, nil
}

// nextURL rebases a next cursor against the client's base URL. Servers
// emit next as an absolute path like /api/v1/rooms?page=2; when the
// base URL already carries that path prefix it is stripped so the two
// do not stack.
func (f *Fetcher[T]) nextURL(next string) string {
	base, err := url.Parse(f.http.BaseURL)
	if err != nil || base.Path == "" || base.Path == "/" {
		return next
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() {
		return next
	}
	if strings.HasPrefix(u.Path, base.Path) {
		u.Path = strings.TrimPrefix(u.Path, base.Path)
		return u.String()
	}
	return next
}

func decodePage[T any](resp *resty.Response) (*Page[T], error) {
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		var body errorBody
		if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode())
		}
		return nil, apiErr
	}

	raw := bytes.TrimSpace(resp.Body())
	if len(raw) > 0 && raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list response: %w", err)
		}
		return &Page[T]{Items: items, Count: len(items)}, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	return &Page[T]{Items: env.Results, Count: env.Count, Next: env.Next}, nil
}
