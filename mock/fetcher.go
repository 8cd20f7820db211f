package mock

import (
	"context"

	"github.com/fwojciec/terreno"
)

var _ terreno.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of terreno.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, opts terreno.FetchOptions) (*terreno.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string, opts terreno.FetchOptions) (*terreno.Response, error) {
	return f.FetchFn(ctx, url, opts)
}
