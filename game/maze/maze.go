/*
Package maze holds the grid model shared by the builder and player
engines: a rectangular table of cell kinds plus the textual encoding
used to store grids inside maze documents.

The grid is a value that is never mutated in place. WithCell returns a
fresh grid, so older snapshots held by callers stay valid. Bounds
checking is the caller's job: the engines decide what an out-of-bounds
coordinate means, the grid only reports its dimensions.
*/
package maze

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Dimension limits for grids. The lower bound leaves room for distinct
// start and end cells; the upper bound keeps documents small.
const (
	MinDimension = 2
	MaxDimension = 63
)

var (
	// ErrInvalidDimensions is returned when a requested grid size is
	// outside [MinDimension, MaxDimension].
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)

// Grid is a rectangular table of cell kinds describing one maze's
// geometry.
type Grid struct {
	cells [][]Cell
}

// New creates a grid of the given dimensions with every cell set to
// Path.
func New(rows, cols int) (Grid, error) {
	if min(rows, cols) < MinDimension || max(rows, cols) > MaxDimension {
		return Grid{}, ErrInvalidDimensions
	}

	cells := make([][]Cell, rows)
	for y := range cells {
		cells[y] = make([]Cell, cols)
	}
	return Grid{cells: cells}, nil
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the number of columns.
func (g Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// InBounds reports whether c addresses a cell of the grid.
func (g Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Cols() && c.Y >= 0 && c.Y < g.Rows()
}

// At returns the cell kind at c. Callers must bounds-check with
// InBounds first; an out-of-range coordinate panics.
func (g Grid) At(c Coord) Cell {
	return g.cells[c.Y][c.X]
}

// WithCell returns a copy of the grid with the cell at c replaced by
// kind. The receiver is left untouched, so previously handed-out grids
// remain valid snapshots. The coordinate must be in bounds.
func (g Grid) WithCell(c Coord, kind Cell) Grid {
	cells := make([][]Cell, len(g.cells))
	for y, row := range g.cells {
		cells[y] = make([]Cell, len(row))
		copy(cells[y], row)
	}
	cells[c.Y][c.X] = kind
	return Grid{cells: cells}
}

// Equal reports cell-by-cell equality, dimensions included.
func (g Grid) Equal(other Grid) bool {
	if g.Rows() != other.Rows() || g.Cols() != other.Cols() {
		return false
	}
	for y, row := range g.cells {
		for x, cell := range row {
			if other.cells[y][x] != cell {
				return false
			}
		}
	}
	return true
}

// Cells returns the table as plain ints, row by row. The result is a
// copy and safe for callers to hold or serialize.
func (g Grid) Cells() [][]int {
	out := make([][]int, len(g.cells))
	for y, row := range g.cells {
		out[y] = make([]int, len(row))
		for x, cell := range row {
			out[y][x] = int(cell)
		}
	}
	return out
}

// Encode renders the grid as the storage format: a JSON nested array of
// the numeric cell kinds, e.g. "[[0,1,0],[0,0,3]]".
func (g Grid) Encode() string {
	raw, _ := json.Marshal(g.Cells())
	return string(raw)
}

// Decode parses a grid from its storage format. It fails on malformed
// JSON, ragged rows, unknown cell kinds, and out-of-range dimensions,
// so a decoded grid always satisfies the Grid invariants.
func Decode(encoded string) (Grid, error) {
	var table [][]int
	if err := json.Unmarshal([]byte(encoded), &table); err != nil {
		return Grid{}, fmt.Errorf("grid encoding is not a nested int array: %v", err)
	}

	rows := len(table)
	if rows == 0 {
		return Grid{}, ErrInvalidDimensions
	}
	cols := len(table[0])
	if min(rows, cols) < MinDimension || max(rows, cols) > MaxDimension {
		return Grid{}, ErrInvalidDimensions
	}

	cells := make([][]Cell, rows)
	for y, row := range table {
		if len(row) != cols {
			return Grid{}, fmt.Errorf("grid row %d has %d cells, want %d", y, len(row), cols)
		}
		cells[y] = make([]Cell, cols)
		for x, v := range row {
			cell := Cell(v)
			if !cell.Valid() {
				return Grid{}, fmt.Errorf("unknown cell kind %d at (%d,%d)", v, x, y)
			}
			cells[y][x] = cell
		}
	}
	return Grid{cells: cells}, nil
}

// String provides a textual representation of the grid, one rune per
// cell.
func (g Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for _, cell := range row {
			b.WriteString(cell.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
