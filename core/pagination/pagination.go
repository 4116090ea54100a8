package pagination

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DefaultLimit is the page size used when Options.Limit is not set.
const DefaultLimit = 100

// Page is the cursor-paginated list envelope shared by the vendor admin APIs.
type Page[T any] struct {
	Data    []T     `json:"data"`
	HasMore bool    `json:"has_more"`
	FirstID *string `json:"first_id"`
	LastID  *string `json:"last_id"`
}

// Fetcher issues a GET request and decodes the JSON response into out.
type Fetcher interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

// Options configures one pagination walk.
type Options struct {
	// Path is the list endpoint path relative to the client's base URL.
	Path string
	// Limit is the page size sent as the "limit" parameter.
	Limit int
	// CursorParam is the query parameter carrying the cursor (e.g., "after").
	CursorParam string
	// Query holds extra query parameters sent with every page.
	Query url.Values
}

// Drain fetches every page and returns all items in vendor order.
// Any failed page aborts the walk and the accumulated items are discarded.
func Drain[T any](ctx context.Context, f Fetcher, opts Options) ([]T, error) {
	items := make([]T, 0)
	err := walk(ctx, f, opts, func(page []T) bool {
		items = append(items, page...)
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Find walks the pages until match returns true and returns that item.
// It returns nil when no item matches.
func Find[T any](ctx context.Context, f Fetcher, opts Options, match func(T) bool) (*T, error) {
	var found *T
	err := walk(ctx, f, opts, func(page []T) bool {
		for i := range page {
			if match(page[i]) {
				item := page[i]
				found = &item
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// walk calls visit for each page until visit returns false or the stream ends.
func walk[T any](ctx context.Context, f Fetcher, opts Options, visit func([]T) bool) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	cursorParam := opts.CursorParam
	if cursorParam == "" {
		cursorParam = "after"
	}

	cursor := ""
	for pageNum := 1; ; pageNum++ {
		query := url.Values{}
		for k, v := range opts.Query {
			query[k] = append([]string(nil), v...)
		}
		query.Set("limit", strconv.Itoa(limit))
		if cursor != "" {
			query.Set(cursorParam, cursor)
		}

		var page Page[T]
		if err := f.Get(ctx, opts.Path, query, &page); err != nil {
			return fmt.Errorf("failed to fetch page %d of %s: %w", pageNum, opts.Path, err)
		}

		if !visit(page.Data) {
			return nil
		}

		if !page.HasMore {
			return nil
		}
		// has_more without a usable cursor is treated as end of stream.
		if page.LastID == nil || *page.LastID == "" || *page.LastID == cursor {
			return nil
		}
		cursor = *page.LastID
	}
}
