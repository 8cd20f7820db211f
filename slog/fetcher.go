// Package slog provides logging decorators for terreno services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/terreno"
)

// Ensure LoggingFetcher implements terreno.Fetcher.
var _ terreno.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   terreno.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next terreno.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, opts terreno.FetchOptions) (resp *terreno.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if resp != nil {
			status = resp.StatusCode
			size = len(resp.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, opts)
}
