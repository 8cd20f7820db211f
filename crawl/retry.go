package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/terreno"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls f with a backoff between attempts. Only fetch errors
// are retried; a response with a non-200 status is returned as is.
// A nil logger disables retry logging.
func FetchWithRetry(ctx context.Context, f terreno.Fetcher, url string, opts terreno.FetchOptions, delays []time.Duration, logger *slog.Logger) (*terreno.Response, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := f.Fetch(ctx, url, opts)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if logger != nil {
			logger.Debug("retrying fetch", "url", url, "attempt", attempt+2, "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
