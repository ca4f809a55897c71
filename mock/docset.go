package mock

import (
	"context"

	"github.com/fwojciec/dashdoc"
)

var _ dashdoc.DocsetService = (*DocsetService)(nil)

// DocsetService is a mock implementation of dashdoc.DocsetService.
type DocsetService struct {
	ListDocsetsFn func(ctx context.Context, filter string) ([]string, error)
	FindDocsetsFn func(ctx context.Context, filter string) ([]*dashdoc.Docset, error)
}

func (s *DocsetService) ListDocsets(ctx context.Context, filter string) ([]string, error) {
	return s.ListDocsetsFn(ctx, filter)
}

func (s *DocsetService) FindDocsets(ctx context.Context, filter string) ([]*dashdoc.Docset, error) {
	return s.FindDocsetsFn(ctx, filter)
}
