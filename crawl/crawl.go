// Package crawl provides the listing crawl pipeline.
// It walks the region index and paginated listing pages, filters listing
// tiles, extracts qualifying properties from their detail pages and hands
// them to a PropertyWriter.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/terreno"
)

// Crawler orchestrates one crawl run. It is single-threaded; all network
// requests happen sequentially on the goroutine calling Run.
type Crawler struct {
	Fetcher   terreno.Fetcher
	Parser    terreno.Parser
	Extractor *Extractor
	Writer    terreno.PropertyWriter
	Ledger    terreno.Ledger

	// Filters defaults to DefaultFilters(Ledger).
	Filters FilterChain
	Pacer   *Pacer
	Options terreno.FetchOptions

	// RetryDelays defaults to DefaultRetryDelays. An empty non-nil slice
	// disables retries.
	RetryDelays []time.Duration

	IndexURL string
	// BaseURL is used to resolve relative links. Defaults to the URL of
	// the page being parsed.
	BaseURL string

	Logger *slog.Logger
}

// Run crawls every region listed on the index page. Failures below the
// index level are logged and counted; only an index failure, a missing
// collaborator or context cancellation is returned as an error.
func (c *Crawler) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	if c.Fetcher == nil || c.Parser == nil || c.Writer == nil || c.Ledger == nil {
		return stats, terreno.Errorf(terreno.EINTERNAL, "crawler requires fetcher, parser, writer and ledger")
	}
	logger := c.logger()

	resp, err := FetchWithRetry(ctx, c.Fetcher, c.IndexURL, c.Options, c.retryDelays(), logger)
	if err != nil {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		return stats, terreno.Errorf(terreno.EINDEX, "fetch index %s: %v", c.IndexURL, err)
	}
	if !resp.OK() {
		return stats, terreno.Errorf(terreno.EINDEX, "fetch index %s: status %d", c.IndexURL, resp.StatusCode)
	}

	regions, err := c.Parser.ParseRegions(resp.Body, c.baseURL(c.IndexURL))
	if err != nil {
		logger.Error("parse regions", "url", c.IndexURL, "error", err)
		return stats, nil
	}
	if len(regions) == 0 {
		logger.Warn("no regions found", "url", c.IndexURL)
		return stats, nil
	}
	logger.Info("regions found", "count", len(regions))

	filters := c.Filters
	if filters == nil {
		filters = DefaultFilters(c.Ledger)
	}

	for _, region := range regions {
		if err := c.Pacer.Wait(ctx); err != nil {
			return stats, err
		}
		completed := c.crawlRegion(ctx, region, filters, stats)
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if completed {
			stats.Regions++
		}
	}
	return stats, nil
}

// crawlRegion walks one region's pages. It reports whether the region ran
// to its last page; a failed page or cancellation ends it early.
func (c *Crawler) crawlRegion(ctx context.Context, region *terreno.Region, filters FilterChain, stats *Stats) bool {
	logger := c.logger().With("region", region.Name)
	logger.Info("crawling region", "url", region.URL)

	visited := make(map[string]struct{})
	followedViewAll := false

	pageURL := region.URL
	for pageURL != "" {
		visited[pageURL] = struct{}{}

		page, err := c.fetchListingPage(ctx, pageURL, logger)
		if err != nil {
			if ctx.Err() == nil {
				stats.FailedPages++
				logger.Error("listing page failed", "url", pageURL, "code", terreno.ErrorCode(err), "error", err)
			}
			return false
		}

		if !followedViewAll && page.ViewAllURL != "" {
			followedViewAll = true
			if _, seen := visited[page.ViewAllURL]; !seen {
				if err := c.Pacer.Wait(ctx); err != nil {
					return false
				}
				pageURL = page.ViewAllURL
				continue
			}
		}

		stats.Pages++
		for _, l := range page.Listings {
			if ctx.Err() != nil {
				return false
			}
			res := c.processListing(ctx, l, filters, logger)
			stats.record(res)
			logResult(logger, res)
		}

		next := page.NextURL
		if next == "" {
			logger.Info("region exhausted", "pages", len(visited))
			return true
		}
		if _, seen := visited[next]; seen {
			logger.Warn("pagination loop detected", "url", next)
			return true
		}
		if err := c.Pacer.Wait(ctx); err != nil {
			return false
		}
		pageURL = next
	}
	return true
}

func (c *Crawler) fetchListingPage(ctx context.Context, url string, logger *slog.Logger) (*terreno.ListingPage, error) {
	resp, err := FetchWithRetry(ctx, c.Fetcher, url, c.Options, c.retryDelays(), logger)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, terreno.Errorf(terreno.EFETCH, "listing page status %d", resp.StatusCode)
	}
	return c.Parser.ParseListingPage(resp.Body, c.baseURL(url))
}

// processListing runs one listing tile through the filters, the detail
// fetch, extraction and persistence. An extracted property enters the
// ledger before it is written, so a partially failed write is never
// repeated for a later sighting of the same URL.
func (c *Crawler) processListing(ctx context.Context, l *terreno.Listing, filters FilterChain, logger *slog.Logger) Result {
	if res, ok := filters.Apply(l); !ok {
		return res
	}

	resp, err := FetchWithRetry(ctx, c.Fetcher, l.URL, c.Options, c.retryDelays(), logger)
	if err != nil {
		return failed(l.URL, err)
	}
	if !resp.OK() {
		return failed(l.URL, terreno.Errorf(terreno.EFETCH, "detail page status %d", resp.StatusCode))
	}

	page, err := c.Parser.ParsePropertyPage(resp.Body)
	if err != nil {
		return failed(l.URL, err)
	}

	extractor := c.Extractor
	if extractor == nil {
		extractor = &Extractor{Logger: logger}
	}
	res := extractor.Extract(ctx, l.URL, l, page)
	if res.Status != StatusExtracted {
		return res
	}

	c.Ledger.Add(res.Property.URL)
	if err := c.Writer.WriteProperty(ctx, res.Property); err != nil {
		return failed(l.URL, fmt.Errorf("write property: %w", err))
	}
	return res
}

func logResult(logger *slog.Logger, res Result) {
	switch res.Status {
	case StatusExtracted:
		p := res.Property
		logger.Info("results",
			"url", p.URL,
			"reference", p.Reference,
			"price", p.Price,
			"land_type", p.LandType,
			"location", p.Location,
		)
	case StatusDuplicate:
		logger.Info(res.Reason, "url", res.URL)
	case StatusFailed:
		logger.Warn("listing failed",
			"url", res.URL,
			"code", terreno.ErrorCode(res.Err),
			"error", res.Err,
		)
	default:
		logger.Debug("listing skipped",
			"url", res.URL,
			"status", res.Status.String(),
			"reason", res.Reason,
		)
	}
}

func (c *Crawler) retryDelays() []time.Duration {
	if c.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return c.RetryDelays
}

func (c *Crawler) baseURL(pageURL string) string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return pageURL
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
