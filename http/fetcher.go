// Package http implements terreno.Fetcher on top of a scraping API that
// handles anti-bot protection, geo-targeting and response caching.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/terreno"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the scraping API endpoint.
const DefaultEndpoint = "https://api.scrapfly.io/scrape"

// DefaultFetchTimeout is the default timeout for a single scrape call.
// Anti-bot scrapes routinely take tens of seconds.
const DefaultFetchTimeout = 150 * time.Second

// Ensure Fetcher implements terreno.Fetcher at compile time.
var _ terreno.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages through the scraping API.
type Fetcher struct {
	client   *http.Client
	apiKey   string
	endpoint string
	timeout  time.Duration
	antiBot  bool
	limiter  *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for scrape calls.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithEndpoint overrides the scraping API endpoint.
func WithEndpoint(endpoint string) Option {
	return func(f *Fetcher) {
		f.endpoint = endpoint
	}
}

// WithAntiBot toggles the anti-bot bypass. Enabled by default.
func WithAntiBot(enabled bool) Option {
	return func(f *Fetcher) {
		f.antiBot = enabled
	}
}

// WithRateLimit caps scrape calls at limit per second with a burst of 1.
// A non-positive or infinite limit leaves calls unthrottled.
func WithRateLimit(limit rate.Limit) Option {
	return func(f *Fetcher) {
		if limit <= 0 || limit == rate.Inf {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(limit, 1)
	}
}

// NewFetcher creates a Fetcher authenticated with apiKey.
func NewFetcher(apiKey string, opts ...Option) *Fetcher {
	f := &Fetcher{
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
		timeout:  DefaultFetchTimeout,
		antiBot:  true,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// scrapeResult is the subset of the scraping API response we read.
type scrapeResult struct {
	Result struct {
		StatusCode int    `json:"status_code"`
		Content    string `json:"content"`
	} `json:"result"`
}

// Fetch scrapes target and returns the upstream status and body.
// Returns EFETCH if the scraping API call itself fails. Errors never
// carry the API key.
func (f *Fetcher) Fetch(ctx context.Context, target string, opts terreno.FetchOptions) (*terreno.Response, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.scrapeURL(target, opts), nil)
	if err != nil {
		return nil, terreno.Errorf(terreno.EFETCH, "build scrape request for %s: %v", target, stripURL(err))
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, terreno.Errorf(terreno.EFETCH, "scrape %s: %v", target, stripURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, terreno.Errorf(terreno.EFETCH, "read scrape response for %s: %v", target, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, terreno.Errorf(terreno.EFETCH, "scrape API HTTP %d for %s", resp.StatusCode, target)
	}

	var result scrapeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, terreno.Errorf(terreno.EFETCH, "decode scrape response for %s: %v", target, err)
	}

	return &terreno.Response{
		URL:        target,
		StatusCode: result.Result.StatusCode,
		Body:       result.Result.Content,
	}, nil
}

// stripURL drops the request URL from a *url.Error, since the scrape URL
// carries the API key in its query.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func (f *Fetcher) scrapeURL(target string, opts terreno.FetchOptions) string {
	q := url.Values{}
	q.Set("key", f.apiKey)
	q.Set("url", target)
	if opts.Country != "" {
		q.Set("country", opts.Country)
	}
	if f.antiBot {
		q.Set("asp", "true")
	}
	if opts.Cache {
		q.Set("cache", "true")
		if opts.CacheTTL > 0 {
			q.Set("cache_ttl", strconv.Itoa(int(opts.CacheTTL.Seconds())))
		}
	}
	for k, v := range opts.Headers {
		q.Set(fmt.Sprintf("headers[%s]", k), v)
	}
	return f.endpoint + "?" + q.Encode()
}
