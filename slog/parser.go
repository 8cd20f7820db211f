package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/terreno"
)

var _ terreno.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   terreno.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next terreno.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

func (p *LoggingParser) ParseRegions(html string, baseURL string) (regions []*terreno.Region, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse regions",
			"count", len(regions),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseRegions(html, baseURL)
}

func (p *LoggingParser) ParseListingPage(html string, baseURL string) (page *terreno.ListingPage, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if page != nil {
			attrs = append(attrs,
				"listings", len(page.Listings),
				"view_all", page.ViewAllURL != "",
				"next", page.NextURL,
			)
		}
		p.logger.Debug("parse listing page", attrs...)
	}(time.Now())
	return p.next.ParseListingPage(html, baseURL)
}

func (p *LoggingParser) ParsePropertyPage(html string) (page *terreno.PropertyPage, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if page != nil {
			attrs = append(attrs,
				"seller", page.SellerName,
				"features", len(page.Features),
				"contact_box", page.HasContactBox,
			)
		}
		p.logger.Debug("parse property page", attrs...)
	}(time.Now())
	return p.next.ParsePropertyPage(html)
}
