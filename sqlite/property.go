package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/terreno"
)

// Compile-time interface verification.
var _ terreno.PropertyWriter = (*PropertyService)(nil)

// PropertyService stores the properties of one crawl run.
type PropertyService struct {
	db    *DB
	runID string
}

// NewPropertyService creates a PropertyService writing rows tagged with runID.
func NewPropertyService(db *DB, runID string) *PropertyService {
	return &PropertyService{db: db, runID: runID}
}

// PropertyFilter represents a filter for FindProperties.
type PropertyFilter struct {
	RunID *string
	URL   *string

	Offset int
	Limit  int
}

// WriteProperty inserts p. A property already stored for this run is
// left untouched.
func (s *PropertyService) WriteProperty(ctx context.Context, p *terreno.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}

	var buildable sql.NullFloat64
	if p.BuildableArea != nil {
		buildable = sql.NullFloat64{Float64: *p.BuildableArea, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO properties (
			run_id, property_url, listing_reference, property_name, price, price_per, land_type,
			location, total_land_area, buildable_area, contact_number1, contact_number2, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, property_url) DO NOTHING
	`, s.runID, p.URL, p.Reference, p.Name, p.Price, p.PricePerArea, p.LandType,
		p.Location, p.TotalLandArea, buildable, p.Contact1, p.Contact2,
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// Close is a no-op; the DB is owned by the caller.
func (s *PropertyService) Close() error {
	return nil
}

// FindProperties retrieves properties matching the filter in insertion order.
func (s *PropertyService) FindProperties(ctx context.Context, filter PropertyFilter) ([]*terreno.Property, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := filter.RunID; v != nil {
		where, args = append(where, "run_id = ?"), append(args, *v)
	}
	if v := filter.URL; v != nil {
		where, args = append(where, "property_url = ?"), append(args, *v)
	}

	var query strings.Builder
	query.WriteString(`
		SELECT property_url, listing_reference, property_name, price, price_per, land_type,
			location, total_land_area, buildable_area, contact_number1, contact_number2
		FROM properties
		WHERE `)
	query.WriteString(strings.Join(where, " AND "))
	query.WriteString(" ORDER BY rowid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []*terreno.Property
	for rows.Next() {
		var p terreno.Property
		var buildable sql.NullFloat64
		if err := rows.Scan(&p.URL, &p.Reference, &p.Name, &p.Price, &p.PricePerArea, &p.LandType,
			&p.Location, &p.TotalLandArea, &buildable, &p.Contact1, &p.Contact2); err != nil {
			return nil, err
		}
		if buildable.Valid {
			v := buildable.Float64
			p.BuildableArea = &v
		}
		properties = append(properties, &p)
	}
	return properties, rows.Err()
}
