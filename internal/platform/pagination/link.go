package pagination

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildLinkHeader builds an RFC 8288 Link header with next/prev relations.
// Query parameters other than cursor are preserved on both links.
// Returns "" when neither cursor is set.
func BuildLinkHeader(baseURL string, query url.Values, nextCursor, prevCursor string) string {
	if nextCursor == "" && prevCursor == "" {
		return ""
	}

	var links []string
	if nextCursor != "" {
		links = append(links, fmt.Sprintf(`<%s>; rel="next"`, pageURL(baseURL, query, nextCursor)))
	}
	if prevCursor != "" {
		links = append(links, fmt.Sprintf(`<%s>; rel="prev"`, pageURL(baseURL, query, prevCursor)))
	}
	return strings.Join(links, ", ")
}

func pageURL(baseURL string, query url.Values, cursor string) string {
	q := url.Values{}
	for k, vs := range query {
		if k == "cursor" {
			continue
		}
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("cursor", cursor)
	return baseURL + "?" + q.Encode()
}
