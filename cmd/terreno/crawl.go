package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/terreno"
	"github.com/fwojciec/terreno/crawl"
	"github.com/fwojciec/terreno/csv"
	"github.com/fwojciec/terreno/goquery"
	terrenohttp "github.com/fwojciec/terreno/http"
	"github.com/fwojciec/terreno/ledger"
	tslog "github.com/fwojciec/terreno/slog"
	"github.com/fwojciec/terreno/sqlite"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if c.APIKey == "" {
		fmt.Fprintln(deps.Stderr, "Hint: set API_KEY in the environment or in a .env file")
		return terreno.Errorf(terreno.ECONFIG, "API_KEY not set")
	}

	sel := goquery.DefaultSelectors()
	if c.Selectors != "" {
		var err error
		if sel, err = goquery.LoadSelectors(c.Selectors); err != nil {
			return terreno.Errorf(terreno.ECONFIG, "%v", err)
		}
	}

	begin := time.Now()
	startedAt := deps.Now()
	runID := uuid.NewString()
	logger := deps.Logger.With("run", runID)

	opts := terreno.DefaultFetchOptions()
	opts.Country = c.Country

	var fetcher terreno.Fetcher = terrenohttp.NewFetcher(c.APIKey,
		terrenohttp.WithEndpoint(c.Endpoint),
		terrenohttp.WithTimeout(c.Timeout),
		terrenohttp.WithAntiBot(c.AntiBot),
		terrenohttp.WithRateLimit(rate.Limit(c.MaxRPS)),
	)
	fetcher = tslog.NewLoggingFetcher(fetcher, logger)
	contacts := tslog.NewLoggingContactService(terrenohttp.NewContactService(fetcher, c.ContactURL, opts), logger)

	out := csv.NewWriter(c.Out, startedAt)
	writers := []terreno.PropertyWriter{out}
	if c.DB != "" {
		db := sqlite.NewDB(c.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
		}
		defer db.Close()
		writers = append(writers, sqlite.NewPropertyService(db, runID))
	}
	writer := tslog.NewLoggingPropertyWriter(terreno.MultiPropertyWriter(writers...), logger)

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Parser:      tslog.NewLoggingParser(goquery.NewParser(sel), logger),
		Extractor:   &crawl.Extractor{Contacts: contacts, Logger: logger},
		Writer:      writer,
		Ledger:      ledger.New(),
		Pacer:       crawl.NewPacer(c.Delay),
		Options:     opts,
		RetryDelays: deps.RetryDelays,
		IndexURL:    c.IndexURL,
		BaseURL:     c.BaseURL,
		Logger:      logger,
	}

	logger.Info("crawl started", "index", c.IndexURL, "out", out.Path())
	stats, err := crawler.Run(deps.Ctx)
	closeErr := writer.Close()

	printSummary(deps.Stdout, runID, time.Since(begin), stats)
	if stats != nil && stats.Saved > 0 {
		fmt.Fprintf(deps.Stdout, "Saved to %s\n", out.Path())
	}

	if errors.Is(err, context.Canceled) {
		logger.Warn("crawl interrupted")
		return closeErr
	}
	if err != nil {
		logger.Error("crawl failed", "code", terreno.ErrorCode(err), "error", err)
		return err
	}
	return closeErr
}

func printSummary(w io.Writer, runID string, elapsed time.Duration, stats *crawl.Stats) {
	if stats == nil {
		stats = &crawl.Stats{}
	}
	fmt.Fprintf(w, "Run %s finished in %s\n", runID, elapsed.Round(time.Second))
	fmt.Fprintf(w, "  regions:    %d\n", stats.Regions)
	fmt.Fprintf(w, "  pages:      %d (%d failed)\n", stats.Pages, stats.FailedPages)
	fmt.Fprintf(w, "  listings:   %d\n", stats.Listings)
	fmt.Fprintf(w, "  saved:      %d\n", stats.Saved)
	fmt.Fprintf(w, "  duplicates: %d\n", stats.Duplicates)
	fmt.Fprintf(w, "  filtered:   %d\n", stats.Filtered)
	fmt.Fprintf(w, "  rejected:   %d\n", stats.Rejected)
	fmt.Fprintf(w, "  failed:     %d\n", stats.Failed)
}
