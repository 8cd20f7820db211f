package terreno

import (
	"context"
	"time"
)

// Default fetch settings applied to every request made during a crawl.
const (
	DefaultCountry  = "PT"
	DefaultCacheTTL = 24 * time.Hour
)

// FetchOptions controls how a page is retrieved by the scraping backend.
type FetchOptions struct {
	// Country is the ISO country code the request is routed through.
	Country string

	// Cache enables backend response caching for CacheTTL.
	Cache    bool
	CacheTTL time.Duration

	// Headers are forwarded to the target site.
	Headers map[string]string
}

// DefaultFetchOptions returns the options used for every crawl request:
// geo-targeted to DefaultCountry, cached for 24 hours and sent with a
// keep-alive connection header.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		Country:  DefaultCountry,
		Cache:    true,
		CacheTTL: DefaultCacheTTL,
		Headers:  map[string]string{"connection": "keep-alive"},
	}
}

// Response is a page returned by a Fetcher.
type Response struct {
	URL        string
	StatusCode int
	Body       string
}

// OK reports whether the target site answered with HTTP 200.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode == 200
}

// Fetcher retrieves pages from the listing site.
type Fetcher interface {
	// Fetch retrieves the page at url. A non-200 answer from the target
	// site is not an error; it is reported in Response.StatusCode.
	// Errors are reserved for failures of the fetch itself.
	Fetch(ctx context.Context, url string, opts FetchOptions) (*Response, error)
}
