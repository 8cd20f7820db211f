package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/terreno"
)

// BuildableArea finds the buildable area feature line and parses its value.
// ok is false when no line mentions the buildable area.
func BuildableArea(features []string) (area float64, ok bool, err error) {
	for _, line := range features {
		if !strings.Contains(line, terreno.BuildableAreaLabel) {
			continue
		}
		v, err := terreno.ParseArea(line)
		return v, true, err
	}
	return 0, false, nil
}

// Extractor turns a parsed detail page into a Property.
type Extractor struct {
	// Contacts is optional. When nil, contact fields stay empty.
	Contacts terreno.ContactService
	Logger   *slog.Logger
}

// Extract applies the seller and buildable area gates, maps the page
// fields and looks up contact numbers. Contact lookup failures are logged
// and leave the contact fields empty.
func (e *Extractor) Extract(ctx context.Context, url string, listing *terreno.Listing, page *terreno.PropertyPage) Result {
	if page.HasSeller {
		if seller := strings.TrimSpace(page.SellerName); seller != terreno.PrivateSeller {
			return skipped(StatusSellerRejected, url, fmt.Sprintf("seller %q is not private", seller))
		}
	}

	var buildable *float64
	area, found, err := BuildableArea(page.Features)
	if err != nil {
		return failed(url, err)
	}
	if found {
		if area < terreno.MinBuildableArea {
			return skipped(StatusAreaRejected, url, fmt.Sprintf("buildable area %v below %v", area, terreno.MinBuildableArea))
		}
		buildable = &area
	}

	ref, err := terreno.ParseReference(url)
	if err != nil {
		return failed(url, err)
	}

	price, err := terreno.ParsePrice(page.Price)
	if err != nil {
		if price, err = terreno.ParsePrice(listing.Price); err != nil {
			return failed(url, err)
		}
	}

	p := &terreno.Property{
		URL:           url,
		Reference:     ref,
		Name:          strings.TrimSpace(page.Name),
		Price:         price,
		PricePerArea:  terreno.BeforeUnit(page.PricePerArea, "€/m²"),
		LandType:      strings.TrimSpace(listing.LandType),
		Location:      strings.Join(page.Locations, ", "),
		TotalLandArea: terreno.BeforeUnit(page.TotalArea, "m²"),
		BuildableArea: buildable,
	}

	if page.HasContactBox && e.Contacts != nil {
		contacts, err := e.Contacts.FindContacts(ctx, ref)
		if err != nil {
			e.logger().Warn("contact lookup failed",
				"url", url,
				"reference", ref,
				"code", terreno.ErrorCode(err),
				"error", err,
			)
		} else {
			p.Contact1 = contacts.Phone1
			p.Contact2 = contacts.Phone2
		}
	}

	if err := p.Validate(); err != nil {
		return failed(url, err)
	}
	return extracted(p)
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
