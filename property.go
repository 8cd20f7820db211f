package terreno

import (
	"context"
	"errors"
)

// Property is a qualifying land listing, the unit persisted by a crawl.
// Fields are declared in output column order.
type Property struct {
	URL           string
	Reference     string
	Name          string
	Price         int
	PricePerArea  string
	LandType      string
	Location      string
	TotalLandArea string

	// BuildableArea is nil when the listing does not state it.
	BuildableArea *float64

	// Contact numbers are empty when unknown.
	Contact1 string
	Contact2 string
}

// Validate returns an error if the property breaks a collection rule.
func (p *Property) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "property URL required")
	}
	if p.Price > MaxPrice {
		return Errorf(EINVALID, "property price %d above ceiling %d", p.Price, MaxPrice)
	}
	if p.BuildableArea != nil && !(*p.BuildableArea >= MinBuildableArea) {
		return Errorf(EINVALID, "buildable area %v below minimum %v", *p.BuildableArea, MinBuildableArea)
	}
	if IsNonDevelopable(p.LandType) {
		return Errorf(EINVALID, "land type %q is not developable", p.LandType)
	}
	return nil
}

// PropertyWriter persists properties. Writes are append-only; a property
// is durable once WriteProperty returns nil.
type PropertyWriter interface {
	WriteProperty(ctx context.Context, p *Property) error
	Close() error
}

// MultiPropertyWriter writes each property to every writer in order.
// It stops at the first failing writer.
func MultiPropertyWriter(writers ...PropertyWriter) PropertyWriter {
	return multiWriter(writers)
}

type multiWriter []PropertyWriter

func (m multiWriter) WriteProperty(ctx context.Context, p *Property) error {
	for _, w := range m {
		if err := w.WriteProperty(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (m multiWriter) Close() error {
	var errs []error
	for _, w := range m {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Contacts holds the phone numbers published for a listing.
type Contacts struct {
	Phone1 string
	Phone2 string
}

// ContactService looks up seller phone numbers.
type ContactService interface {
	// FindContacts returns the phone numbers for the listing reference.
	// Returns ECONTACT if the lookup fails.
	FindContacts(ctx context.Context, reference string) (*Contacts, error)
}

// Ledger records the property URLs already processed during a run.
type Ledger interface {
	// Seen returns true if the URL has been added.
	Seen(url string) bool

	// Add records the URL. Returns false if it was already present.
	Add(url string) bool

	// Len returns the number of distinct URLs recorded.
	Len() int
}
