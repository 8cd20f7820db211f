package main

import (
	"fmt"

	"github.com/fwojciec/terreno"
	"github.com/fwojciec/terreno/sqlite"
)

// Run executes the results command.
func (c *ResultsCmd) Run(deps *Dependencies) error {
	db := sqlite.NewDB(c.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", c.DB, err)
	}
	defer db.Close()

	filter := sqlite.PropertyFilter{Limit: c.Limit}
	if c.RunID != "" {
		filter.RunID = &c.RunID
	}

	props, err := sqlite.NewPropertyService(db, "").FindProperties(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", terreno.ErrorMessage(err))
		return err
	}

	if len(props) == 0 {
		fmt.Fprintln(deps.Stdout, "No properties found. Use 'terreno crawl --db' to collect some.")
		return nil
	}

	for _, p := range props {
		fmt.Fprintf(deps.Stdout, "%s  %d€  %s  %s\n", p.Reference, p.Price, p.Location, p.URL)
	}
	return nil
}
