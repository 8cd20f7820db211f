package crawl

import (
	"fmt"

	"github.com/fwojciec/terreno"
)

// Filter decides whether a listing tile is worth a detail fetch.
// Check returns true when the listing passes; otherwise the returned
// Result carries the rejection status and reason.
type Filter interface {
	Check(l *terreno.Listing) (Result, bool)
}

// FilterChain applies filters in order and stops at the first rejection.
type FilterChain []Filter

// Apply runs the chain against l. It returns the first rejection, if any.
func (c FilterChain) Apply(l *terreno.Listing) (Result, bool) {
	for _, f := range c {
		if res, ok := f.Check(l); !ok {
			return res, false
		}
	}
	return Result{}, true
}

// DefaultFilters returns the land type, price and dedup filters in that order.
func DefaultFilters(ledger terreno.Ledger) FilterChain {
	return FilterChain{
		LandTypeFilter{},
		PriceFilter{Max: terreno.MaxPrice},
		DedupFilter{Ledger: ledger},
	}
}

// LandTypeFilter rejects listings without a land classification and
// listings classified as non-developable.
type LandTypeFilter struct{}

func (LandTypeFilter) Check(l *terreno.Listing) (Result, bool) {
	if l.LandType == "" {
		return skipped(StatusFilteredOut, l.URL, "missing land type"), false
	}
	if terreno.IsNonDevelopable(l.LandType) {
		return skipped(StatusFilteredOut, l.URL, "non-developable land"), false
	}
	return Result{}, true
}

// PriceFilter rejects listings whose price is unparsable or above Max.
type PriceFilter struct {
	Max int
}

func (f PriceFilter) Check(l *terreno.Listing) (Result, bool) {
	price, err := terreno.ParsePrice(l.Price)
	if err != nil {
		return skipped(StatusFilteredOut, l.URL, terreno.ErrorMessage(err)), false
	}
	if price > f.Max {
		return skipped(StatusFilteredOut, l.URL, fmt.Sprintf("price %d above %d", price, f.Max)), false
	}
	return Result{}, true
}

// DedupFilter rejects listings with no detail URL and listings already in
// the ledger.
type DedupFilter struct {
	Ledger terreno.Ledger
}

func (f DedupFilter) Check(l *terreno.Listing) (Result, bool) {
	if l.URL == "" {
		return skipped(StatusFilteredOut, l.URL, "missing detail link"), false
	}
	if f.Ledger != nil && f.Ledger.Seen(l.URL) {
		return skipped(StatusDuplicate, l.URL, "skipping already processed property"), false
	}
	return Result{}, true
}
