package dashdoc

import "context"

// SearchResult is the outcome of a search.
type SearchResult struct {
	// Found is false when nothing matched the query.
	Found bool

	// HTML is a self-contained fragment listing the matches. It is
	// embedded in the search page verbatim.
	HTML string
}

// Searcher searches the indexes of installed docsets.
type Searcher interface {
	// Search looks up query in the docsets selected by the docsets filter.
	// Spaces in query match any run of characters. An empty docsets filter
	// searches every installed docset.
	Search(ctx context.Context, query, docsets string) (*SearchResult, error)
}
