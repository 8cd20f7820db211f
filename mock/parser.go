package mock

import "github.com/fwojciec/terreno"

var _ terreno.Parser = (*Parser)(nil)

// Parser is a mock implementation of terreno.Parser.
type Parser struct {
	ParseRegionsFn      func(html string, baseURL string) ([]*terreno.Region, error)
	ParseListingPageFn  func(html string, baseURL string) (*terreno.ListingPage, error)
	ParsePropertyPageFn func(html string) (*terreno.PropertyPage, error)
}

func (p *Parser) ParseRegions(html string, baseURL string) ([]*terreno.Region, error) {
	return p.ParseRegionsFn(html, baseURL)
}

func (p *Parser) ParseListingPage(html string, baseURL string) (*terreno.ListingPage, error) {
	return p.ParseListingPageFn(html, baseURL)
}

func (p *Parser) ParsePropertyPage(html string) (*terreno.PropertyPage, error) {
	return p.ParsePropertyPageFn(html)
}
