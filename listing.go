package terreno

// Region is a geographic subdivision listed on the site index.
type Region struct {
	Name string
	URL  string
}

// Listing is the summary of a property shown as a tile on a listing page.
// It only lives long enough to be filtered.
type Listing struct {
	LandType string
	Price    string // raw text, e.g. "95.000€"
	URL      string
}

// ListingPage is a parsed region or listing page.
type ListingPage struct {
	// ViewAllURL is set when the region page only previews its catalog
	// and links to the full paginated listing.
	ViewAllURL string

	Listings []*Listing

	// NextURL is empty on the last page.
	NextURL string
}

// PropertyPage holds the raw fields of a property detail page.
type PropertyPage struct {
	// SellerName is the professional-name field. HasSeller is false when
	// the field is absent from the page.
	SellerName string
	HasSeller  bool

	Features      []string
	Name          string
	TotalArea     string
	Price         string
	PricePerArea  string
	Locations     []string
	HasContactBox bool
}

// Parser extracts structured data from fetched HTML.
type Parser interface {
	// ParseRegions returns the regions linked from the site index.
	// Relative links are resolved against baseURL.
	ParseRegions(html string, baseURL string) ([]*Region, error)

	// ParseListingPage returns the tiles and navigation links of a page.
	ParseListingPage(html string, baseURL string) (*ListingPage, error)

	// ParsePropertyPage returns the raw fields of a property detail page.
	ParsePropertyPage(html string) (*PropertyPage, error)
}
