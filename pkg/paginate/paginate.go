// Package paginate drains cursor-paged remote collections.
//
// Every listing in this module (objects by id, objects by owner, coins,
// dynamic fields, structured projections) goes through the same loop here:
// call the page operation with the previous continuation cursor until the
// remote reports no further pages, appending items in arrival order.
package paginate

import (
	"context"
	"errors"
	"fmt"
)

// MaxPageSize is the largest page (and identifier chunk) requested from the remote.
const MaxPageSize = 50

// ErrMissingCursor is returned when a page claims more data but carries no
// continuation cursor; following it would refetch the first page forever.
var ErrMissingCursor = errors.New("page reports more results but no end cursor")

// Page is one response of a paged query.
type Page[T any] struct {
	Items       []T
	EndCursor   *string
	HasNextPage bool
}

// FetchFunc requests one page for filter starting after cursor (nil = first page).
type FetchFunc[T, F any] func(ctx context.Context, filter F, cursor *string, limit int) (Page[T], error)

// VisitFunc receives items in order. Returning stop=true ends the scan early.
type VisitFunc[T any] func(item T) (stop bool, err error)

// Limit clamps a requested page size into (0, MaxPageSize].
func Limit(requested int) int {
	if requested <= 0 || requested > MaxPageSize {
		return MaxPageSize
	}
	return requested
}

// All returns every item matching filter, in page order.
func All[T, F any](ctx context.Context, fetch FetchFunc[T, F], filter F, limit int) ([]T, error) {
	items := []T{}
	err := Each(ctx, fetch, filter, limit, func(item T) (bool, error) {
		items = append(items, item)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Each streams items to visit page by page and stops requesting pages as soon
// as visit asks to stop.
func Each[T, F any](ctx context.Context, fetch FetchFunc[T, F], filter F, limit int, visit VisitFunc[T]) error {
	_, err := EachCount(ctx, fetch, filter, limit, visit)
	return err
}

// EachCount is Each that also reports how many pages were requested.
func EachCount[T, F any](ctx context.Context, fetch FetchFunc[T, F], filter F, limit int, visit VisitFunc[T]) (int, error) {
	limit = Limit(limit)

	var cursor *string
	pages := 0
	for {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		page, err := fetch(ctx, filter, cursor, limit)
		pages++
		if err != nil {
			return pages, fmt.Errorf("fetch page %d: %w", pages, err)
		}

		for _, item := range page.Items {
			stop, err := visit(item)
			if err != nil {
				return pages, err
			}
			if stop {
				return pages, nil
			}
		}

		if !page.HasNextPage {
			return pages, nil
		}
		if page.EndCursor == nil || *page.EndCursor == "" {
			return pages, fmt.Errorf("fetch page %d: %w", pages, ErrMissingCursor)
		}
		next := *page.EndCursor
		cursor = &next
	}
}

// Chunked drains an identifier-filtered listing whose filter accepts at most
// MaxPageSize identifiers. ids are split into consecutive chunks, each chunk
// is drained fully before the next one starts, and input order is kept.
func Chunked[T, ID, F any](
	ctx context.Context,
	ids []ID,
	filterFor func(chunk []ID) F,
	fetch FetchFunc[T, F],
	limit int,
) ([]T, error) {
	items := []T{}
	for _, chunk := range Chunks(ids, MaxPageSize) {
		got, err := All(ctx, fetch, filterFor(chunk), limit)
		if err != nil {
			return nil, err
		}
		items = append(items, got...)
	}
	return items, nil
}

// Chunks splits ids into consecutive slices of at most size elements.
func Chunks[ID any](ids []ID, size int) [][]ID {
	if size <= 0 {
		size = MaxPageSize
	}
	var chunks [][]ID
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end:end])
	}
	return chunks
}
