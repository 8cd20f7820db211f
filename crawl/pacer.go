package crawl

import (
	"context"
	"time"
)

// DefaultPoliteDelay is the default pause between region and page transitions.
const DefaultPoliteDelay = time.Second

// Pacer pauses for a fixed interval at every region and page transition,
// regardless of how long the work before it took. A nil Pacer never waits.
type Pacer struct {
	interval time.Duration
}

// NewPacer creates a Pacer with the given interval. A non-positive
// interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait sleeps for the full interval.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
