// Package sheets maps record CRUD onto the range-addressed values API of a spreadsheet.
//
// Every sheet holds a header in row 1 and one record per row from row 2 on.
// Rows are addressed positionally; deleted records leave a blank row behind
// which reads skip and `Table.Compact` reclaims.
package sheets

import "context"

// ValueService is the subset of the spreadsheet values API used by the tables.
// Ranges are given in A1 notation; cells are written as raw strings.
type ValueService interface {
	// Get returns the rows of rng. Trailing blank rows and cells may be omitted.
	Get(ctx context.Context, rng string) ([][]string, error)
	// Append writes rows below the block of non-blank rows starting at the first row of rng,
	// overwriting cells in place. Rows are never inserted, so the other rows keep their positions.
	Append(ctx context.Context, rng string, rows [][]string) error
	// Update overwrites the cells of rng.
	Update(ctx context.Context, rng string, rows [][]string) error
	// Clear blanks the cells of rng, keeping the rows in place.
	Clear(ctx context.Context, rng string) error
}
