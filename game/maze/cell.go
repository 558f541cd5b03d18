package maze

// Cell is the kind of a single grid cell. The numeric values are part of
// the serialized grid format and must not be reordered.
type Cell int

const (
	// Path is a walkable cell.
	Path Cell = iota
	// Wall blocks movement and may not hold the start or end marker.
	Wall
	// Start marks the cell a play session begins on. A grid holds at
	// most one.
	Start
	// End marks the goal cell. A grid holds at most one.
	End
)

// Valid reports whether c is one of the defined cell kinds.
func (c Cell) Valid() bool {
	return c >= Path && c <= End
}

// String returns the single-rune rendering used by Grid.String.
func (c Cell) String() string {
	switch c {
	case Path:
		return "."
	case Wall:
		return "#"
	case Start:
		return "S"
	case End:
		return "E"
	default:
		return "?"
	}
}

// Coord addresses a grid cell. X is the column and Y the row, both
// 0-indexed from the top-left corner.
type Coord struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Translate returns the coordinate shifted by dx columns and dy rows.
func (c Coord) Translate(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}
