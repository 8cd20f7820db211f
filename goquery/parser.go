// Package goquery reads listing site pages using CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/terreno"
)

// Compile-time interface verification.
var _ terreno.Parser = (*Parser)(nil)

// Parser implements terreno.Parser with goquery.
type Parser struct {
	sel Selectors
}

// NewParser creates a Parser using the given selectors.
func NewParser(sel Selectors) *Parser {
	return &Parser{sel: sel}
}

// ParseRegions returns one Region per anchor in the region list.
// Anchors without an href are skipped.
func (p *Parser) ParseRegions(html string, baseURL string) ([]*terreno.Region, error) {
	doc, base, err := load(html, baseURL)
	if err != nil {
		return nil, err
	}

	var regions []*terreno.Region
	doc.Find(p.sel.RegionLinks).Each(func(_ int, a *goquery.Selection) {
		href := resolve(base, a)
		if href == "" {
			return
		}
		regions = append(regions, &terreno.Region{
			Name: strings.TrimSpace(a.Text()),
			URL:  href,
		})
	})
	return regions, nil
}

// ParseListingPage returns the listing tiles of a page along with its
// "view all" and next-page links.
func (p *Parser) ParseListingPage(html string, baseURL string) (*terreno.ListingPage, error) {
	doc, base, err := load(html, baseURL)
	if err != nil {
		return nil, err
	}

	page := &terreno.ListingPage{
		ViewAllURL: resolve(base, doc.Find(p.sel.ViewAll).First()),
		NextURL:    resolve(base, doc.Find(p.sel.NextPage).First()),
	}

	doc.Find(p.sel.ListingTile).Each(func(_ int, tile *goquery.Selection) {
		l := &terreno.Listing{
			Price: strings.TrimSpace(tile.Find(p.sel.TilePrice).First().Text()),
			URL:   resolve(base, tile.Find(p.sel.TileLink).First()),
		}
		details := tile.Find(p.sel.TileDetails)
		if details.Length() > p.sel.LandTypeIndex {
			l.LandType = strings.TrimSpace(details.Eq(p.sel.LandTypeIndex).Text())
		}
		page.Listings = append(page.Listings, l)
	})

	return page, nil
}

// ParsePropertyPage returns the raw fields of a detail page.
// Returns EPARSE if the page has no title block.
func (p *Parser) ParsePropertyPage(html string) (*terreno.PropertyPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, terreno.Errorf(terreno.EPARSE, "failed to parse HTML: %v", err)
	}

	info := doc.Find(p.sel.DetailInfo).First()
	title := info.Find(p.sel.Title).First()
	if title.Length() == 0 {
		return nil, terreno.Errorf(terreno.EPARSE, "property title not found")
	}

	page := &terreno.PropertyPage{
		Name:          strings.TrimSpace(title.Text()),
		TotalArea:     strings.TrimSpace(info.Find(p.sel.TotalArea).First().Text()),
		HasContactBox: doc.Find(p.sel.ContactBox).Length() > 0,
	}

	if seller := doc.Find(p.sel.SellerName).First(); seller.Length() > 0 {
		page.HasSeller = true
		page.SellerName = strings.TrimSpace(seller.Text())
	}

	doc.Find(p.sel.Features).Each(func(_ int, li *goquery.Selection) {
		page.Features = append(page.Features, strings.TrimSpace(li.Text()))
	})

	prices := doc.Find(p.sel.PriceBlock).First()
	page.Price = strings.TrimSpace(prices.Find(p.sel.Price).First().Text())
	page.PricePerArea = strings.TrimSpace(prices.Find(p.sel.PricePerArea).Eq(p.sel.PricePerAreaIndex).Text())

	doc.Find(p.sel.Location).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			page.Locations = append(page.Locations, text)
		}
	})

	return page, nil
}

func load(html string, baseURL string) (*goquery.Document, *url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, terreno.Errorf(terreno.EPARSE, "invalid base URL: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, terreno.Errorf(terreno.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc, base, nil
}

// resolve returns the absolute href of the first node in sel, or an empty
// string when sel is empty, has no href, or the href is not an HTTP link.
func resolve(base *url.URL, sel *goquery.Selection) string {
	href, ok := sel.Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "#")
}
