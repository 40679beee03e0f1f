package pinata

// Page is one slice of a cursor-paginated Pinata collection. An empty
// NextPageToken marks the final page. Page sizes are whatever the
// upstream decides; callers must not assume a fixed size.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

/*
DrainPages follows a cursor sequence to exhaustion, or until limit items
have been collected when limit is greater than zero. The limit is a hard
cap: once the running total reaches it, the result is truncated to
exactly limit and no further pages are fetched. With no limit the only
stop condition is the upstream running out of pages, so callers that
need a latency bound must supply one.
*/
func DrainPages[T any](fetch func(pageToken string) (Page[T], error), limit int) ([]T, error) {
	var (
		all       []T
		pageToken string
	)

	for {
		page, err := fetch(pageToken)

		if err != nil {
			return nil, err
		}

		all = append(all, page.Items...)

		if limit > 0 && len(all) >= limit {
			return all[:limit], nil
		}

		if page.NextPageToken == "" {
			return all, nil
		}

		pageToken = page.NextPageToken
	}
}
