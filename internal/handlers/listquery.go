package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/pkg/dto"
)

// listOptions parses the page/page_size/search query parameters. A
// missing page parameter means the endpoint returns the full
// collection as a bare array instead of a paginated envelope.
func listOptions(c *drift.Context) (services.ListOptions, error) {
	opts := services.ListOptions{Search: c.QueryParam("search")}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return opts, fmt.Errorf("invalid page parameter")
		}
		opts.Page = page
	}

	if raw := c.QueryParam("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return opts, fmt.Errorf("invalid page_size parameter")
		}
		opts.PageSize = size
	}

	return opts, nil
}

// respondList writes either a bare array or a {results, count, next}
// envelope, depending on whether the request asked for a page.
func respondList[T any](c *drift.Context, path string, opts services.ListOptions, results []T, count int) {
	if results == nil {
		results = []T{}
	}

	if !opts.Paged() {
		_ = c.JSON(200, results)
		return
	}

	_ = c.JSON(200, dto.Envelope[T]{
		Results: results,
		Count:   count,
		Next:    nextPageURL(path, opts, len(results), count),
	})
}

func nextPageURL(path string, opts services.ListOptions, returned, count int) *string {
	if opts.Offset()+returned >= count {
		return nil
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page+1))
	q.Set("page_size", strconv.Itoa(opts.Limit()))
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	// List routes are registered with a trailing slash, so the cursor
	// has to carry one to stay requestable.
	next := path + "/?" + q.Encode()
	return &next
}
