package goquery

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors holds the CSS selectors used to read the listing site.
// Nested selectors (Title, TotalArea, Price, PricePerArea) are evaluated
// inside their parent block.
type Selectors struct {
	// Index page.
	RegionLinks string `yaml:"region_links"`

	// Region and listing pages.
	ViewAll       string `yaml:"view_all"`
	ListingTile   string `yaml:"listing_tile"`
	TileDetails   string `yaml:"tile_details"`
	LandTypeIndex int    `yaml:"land_type_index"`
	TilePrice     string `yaml:"tile_price"`
	TileLink      string `yaml:"tile_link"`
	NextPage      string `yaml:"next_page"`

	// Property detail page.
	SellerName        string `yaml:"seller_name"`
	Features          string `yaml:"features"`
	DetailInfo        string `yaml:"detail_info"`
	Title             string `yaml:"title"`
	TotalArea         string `yaml:"total_area"`
	PriceBlock        string `yaml:"price_block"`
	Price             string `yaml:"price"`
	PricePerArea      string `yaml:"price_per_area"`
	PricePerAreaIndex int    `yaml:"price_per_area_index"`
	Location          string `yaml:"location"`
	ContactBox        string `yaml:"contact_box"`
}

// DefaultSelectors returns the selectors matching the current site markup.
func DefaultSelectors() Selectors {
	return Selectors{
		RegionLinks: ".locations-list a",

		ViewAll:       ".container .title a",
		ListingTile:   ".item-multimedia",
		TileDetails:   ".item-detail-char",
		LandTypeIndex: 1,
		TilePrice:     ".price-row .item-price",
		TileLink:      ".item-link",
		NextPage:      ".pagination .next a",

		SellerName:        ".professional-name",
		Features:          ".details-property-feature-one li",
		DetailInfo:        ".detail-info",
		Title:             ".main-info__title-main",
		TotalArea:         ".info-features",
		PriceBlock:        "#mortgages .toggle-price",
		Price:             ".flex-feature",
		PricePerArea:      ".squaredmeterprice",
		PricePerAreaIndex: 1,
		Location:          "#mapWrapper",
		ContactBox:        "#contact-phones-container",
	}
}

// LoadSelectors reads a YAML file and overlays it on DefaultSelectors.
// Keys missing from the file keep their default value.
func LoadSelectors(path string) (Selectors, error) {
	s := DefaultSelectors()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read selectors: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse selectors %s: %w", path, err)
	}
	return s, nil
}
