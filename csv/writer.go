// Package csv provides the append-only CSV sink for collected properties.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fwojciec/terreno"
)

// Header is the first row of every output file.
var Header = []string{
	"Property_Url", "Listing_Reference", "Property_Name", "Property_Price", "Price_per", "Land_Type",
	"Location", "Total_Land_Area", "Buildable_Area", "Contact_Number1", "Contact_Number2",
}

// timestampLayout renders the run start as DDMMYYYY_HHMM.
const timestampLayout = "02012006_1504"

// FileName returns the output file name for a run started at startedAt.
func FileName(startedAt time.Time) string {
	return "Scraped_data" + startedAt.UTC().Format(timestampLayout) + ".csv"
}

// Ensure Writer implements terreno.PropertyWriter at compile time.
var _ terreno.PropertyWriter = (*Writer)(nil)

// Writer appends properties to a CSV file, one row per property.
// The file is created lazily on the first write, so a run that collects
// nothing leaves no file behind. Every row is flushed and synced to disk
// before WriteProperty returns.
type Writer struct {
	path string
	f    *os.File
	w    *csv.Writer
}

// NewWriter creates a Writer for the run started at startedAt that writes
// into dir.
func NewWriter(dir string, startedAt time.Time) *Writer {
	return &Writer{path: filepath.Join(dir, FileName(startedAt))}
}

// Path returns the output file path.
func (w *Writer) Path() string {
	return w.path
}

// WriteProperty validates p and appends it as one row.
func (w *Writer) WriteProperty(ctx context.Context, p *terreno.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if w.f == nil {
		if err := w.open(); err != nil {
			return err
		}
	}

	if err := w.w.Write(Row(p)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return w.flush()
}

// Close closes the output file if it was opened.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f, w.w = nil, nil
	return err
}

// open creates or reopens the output file. The header is written only
// when the file is empty.
func (w *Writer) open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat output file: %w", err)
	}

	w.f = f
	w.w = csv.NewWriter(f)

	if info.Size() == 0 {
		err := w.w.Write(Header)
		if err != nil {
			err = fmt.Errorf("write header: %w", err)
		} else {
			err = w.flush()
		}
		if err != nil {
			// Leave the writer closed so the next write retries the header.
			f.Close()
			w.f, w.w = nil, nil
			return err
		}
	}
	return nil
}

func (w *Writer) flush() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return w.f.Sync()
}

// Row renders p in Header column order. Unknown optional fields are empty.
func Row(p *terreno.Property) []string {
	var buildable string
	if p.BuildableArea != nil {
		buildable = strconv.FormatFloat(*p.BuildableArea, 'f', -1, 64)
	}
	return []string{
		p.URL,
		p.Reference,
		p.Name,
		strconv.Itoa(p.Price),
		p.PricePerArea,
		p.LandType,
		p.Location,
		p.TotalLandArea,
		buildable,
		p.Contact1,
		p.Contact2,
	}
}
