package pagination

import (
	"net/url"
	"slices"
)

// Result is one page of items plus navigation cursors.
type Result[T any] struct {
	Items      []T
	Total      int
	NextCursor string
	PrevCursor string
	LinkHeader string
}

// Paginate slices an already-filtered, stably-ordered item list into one page.
// The cursor names the last item of the previous page; an unknown cursor value
// falls back to the first page. Total always reflects the full filtered set.
func Paginate[T any](
	items []T,
	cursor Cursor,
	limit int,
	cursorType string,
	getID func(T) string,
	baseURL string,
	query url.Values,
) Result[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	start := 0
	if cursor.Value != "" {
		idx := slices.IndexFunc(items, func(item T) bool {
			return getID(item) == cursor.Value
		})
		if idx >= 0 {
			start = idx + 1
		}
	}

	end := min(start+limit, len(items))
	page := items[start:end]

	var nextCursor, prevCursor string
	if end < len(items) {
		nextCursor = Cursor{Type: cursorType, Value: getID(items[end-1])}.Encode()
	}
	if start > 0 {
		prev := Cursor{Type: cursorType}
		if prevStart := start - limit; prevStart > 0 {
			prev.Value = getID(items[prevStart-1])
		}
		prevCursor = prev.Encode()
	}

	return Result[T]{
		Items:      page,
		Total:      len(items),
		NextCursor: nextCursor,
		PrevCursor: prevCursor,
		LinkHeader: BuildLinkHeader(baseURL, query, nextCursor, prevCursor),
	}
}
