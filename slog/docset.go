// Package slog provides logging decorators for dashdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dashdoc"
)

// Ensure LoggingDocsetService implements dashdoc.DocsetService.
var _ dashdoc.DocsetService = (*LoggingDocsetService)(nil)

// LoggingDocsetService wraps a DocsetService with debug logging.
type LoggingDocsetService struct {
	next   dashdoc.DocsetService
	logger *slog.Logger
}

// NewLoggingDocsetService creates a new LoggingDocsetService.
func NewLoggingDocsetService(next dashdoc.DocsetService, logger *slog.Logger) *LoggingDocsetService {
	return &LoggingDocsetService{next: next, logger: logger}
}

// ListDocsets delegates to the wrapped service and logs the operation.
func (s *LoggingDocsetService) ListDocsets(ctx context.Context, filter string) (names []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list docsets",
			"filter", filter,
			"count", len(names),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListDocsets(ctx, filter)
}

// FindDocsets delegates to the wrapped service and logs the operation.
func (s *LoggingDocsetService) FindDocsets(ctx context.Context, filter string) (docsets []*dashdoc.Docset, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find docsets",
			"filter", filter,
			"count", len(docsets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocsets(ctx, filter)
}
