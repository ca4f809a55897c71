package mock

import (
	"context"

	"github.com/fwojciec/dashdoc"
)

var _ dashdoc.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of dashdoc.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query, docsets string) (*dashdoc.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query, docsets string) (*dashdoc.SearchResult, error) {
	return s.SearchFn(ctx, query, docsets)
}
