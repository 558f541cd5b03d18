// Package builder implements the maze authoring engine: paint operations
// with placement invariants, explicit start/end tracking, and the pointer
// state machine behind drag painting.
package builder

import (
	"errors"
	"strings"

	"github.com/mazehub/mazehub-api/game/maze"
)

// Builder-related errors.
var (
	ErrNameMissing  = errors.New("maze needs a name")
	ErrStartMissing = errors.New("maze needs a start cell")
	ErrEndMissing   = errors.New("maze needs an end cell")
	ErrStartIsEnd   = errors.New("start and end must be different cells")
	ErrUnknownTool  = errors.New("unknown tool")
	ErrUnknownEvent = errors.New("unknown pointer event")
)

// Event names one step of a pointer gesture.
type Event int

const (
	EventDown Event = iota
	EventEnter
	EventUp
	EventLeave
)

// ParseEvent maps the wire names "down", "enter", "up" and "leave" onto
// pointer events.
func ParseEvent(name string) (Event, error) {
	switch name {
	case "down":
		return EventDown, nil
	case "enter":
		return EventEnter, nil
	case "up":
		return EventUp, nil
	case "leave":
		return EventLeave, nil
	}
	return 0, ErrUnknownEvent
}

// ParseTool maps the wire names "path", "wall", "start" and "end" onto
// paint tools.
func ParseTool(name string) (maze.Cell, error) {
	switch name {
	case "path":
		return maze.Path, nil
	case "wall":
		return maze.Wall, nil
	case "start":
		return maze.Start, nil
	case "end":
		return maze.End, nil
	}
	return 0, ErrUnknownTool
}

// ToolName is the inverse of ParseTool.
func ToolName(tool maze.Cell) string {
	switch tool {
	case maze.Path:
		return "path"
	case maze.Wall:
		return "wall"
	case maze.Start:
		return "start"
	case maze.End:
		return "end"
	}
	return "unknown"
}

// Draft is one maze under authoring. It owns its grid and the tracked
// start/end coordinates; every applied paint swaps in a fresh grid
// (copy-on-write), so snapshots handed out earlier stay valid.
type Draft struct {
	grid    maze.Grid
	start   *maze.Coord
	end     *maze.Coord
	tool    maze.Cell
	drawing bool
}

// New returns an all-path draft with the given dimensions and the wall
// tool armed.
func New(rows, cols int) (*Draft, error) {
	grid, err := maze.New(rows, cols)
	if err != nil {
		return nil, err
	}

	return &Draft{grid: grid, tool: maze.Wall}, nil
}

// FromGrid resumes authoring over an existing grid, adopting any start
// and end markers already painted in it as the tracked coordinates.
func FromGrid(grid maze.Grid) *Draft {
	d := &Draft{grid: grid, tool: maze.Wall}
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			at := maze.Coord{X: x, Y: y}
			switch grid.At(at) {
			case maze.Start:
				marker := at
				d.start = &marker
			case maze.End:
				marker := at
				d.end = &marker
			}
		}
	}
	return d
}

// Paint applies kind at coord and reports whether the paint was applied.
// Rejected paints leave the draft untouched:
//   - start/end may never be placed on a wall cell;
//   - wall/path may never overwrite the tracked start or end coordinate,
//     the marker has to be moved with its own tool first;
//   - coordinates outside the grid are ignored.
func (d *Draft) Paint(coord maze.Coord, kind maze.Cell) bool {
	if !kind.Valid() || !d.grid.InBounds(coord) {
		return false
	}

	if kind == maze.Start || kind == maze.End {
		return d.placeMarker(coord, kind)
	}
	return d.paintGround(coord, kind)
}

// placeMarker relocates the start or end marker to coord, resetting the
// marker's previous cell to path.
func (d *Draft) placeMarker(coord maze.Coord, kind maze.Cell) bool {
	if d.grid.At(coord) == maze.Wall {
		return false
	}

	tracked := d.start
	if kind == maze.End {
		tracked = d.end
	}

	next := d.grid
	if tracked != nil {
		next = next.WithCell(*tracked, maze.Path)
	}
	d.grid = next.WithCell(coord, kind)

	moved := coord
	if kind == maze.Start {
		d.start = &moved
	} else {
		d.end = &moved
	}
	return true
}

func (d *Draft) paintGround(coord maze.Coord, kind maze.Cell) bool {
	if (d.start != nil && *d.start == coord) || (d.end != nil && *d.end == coord) {
		return false
	}

	d.grid = d.grid.WithCell(coord, kind)
	return true
}

// SetTool arms kind for subsequent pointer events.
func (d *Draft) SetTool(kind maze.Cell) error {
	if !kind.Valid() {
		return ErrUnknownTool
	}
	d.tool = kind
	return nil
}

// PointerDown presses the armed tool onto coord. Wall and path tools also
// open a drag gesture that keeps painting on PointerEnter until the
// pointer is released or leaves the grid; start and end tools apply on
// discrete presses only.
func (d *Draft) PointerDown(coord maze.Coord) bool {
	if d.tool == maze.Wall || d.tool == maze.Path {
		d.drawing = true
	}
	return d.Paint(coord, d.tool)
}

// PointerEnter paints coord when a drag gesture is open.
func (d *Draft) PointerEnter(coord maze.Coord) bool {
	if !d.drawing {
		return false
	}
	return d.Paint(coord, d.tool)
}

// PointerUp closes the drag gesture.
func (d *Draft) PointerUp() {
	d.drawing = false
}

// PointerLeave closes the drag gesture without applying anything.
func (d *Draft) PointerLeave() {
	d.drawing = false
}

// Apply dispatches one pointer event and reports whether it painted a
// cell. Up and leave never paint.
func (d *Draft) Apply(e Event, at maze.Coord) bool {
	switch e {
	case EventDown:
		return d.PointerDown(at)
	case EventEnter:
		return d.PointerEnter(at)
	case EventUp:
		d.PointerUp()
	case EventLeave:
		d.PointerLeave()
	}
	return false
}

// ValidateForSave reports the first reason the draft cannot be saved
// under the given name, checking name, start, end and their distinctness
// in that order.
func (d *Draft) ValidateForSave(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameMissing
	}
	if d.start == nil {
		return ErrStartMissing
	}
	if d.end == nil {
		return ErrEndMissing
	}
	if *d.start == *d.end {
		return ErrStartIsEnd
	}
	return nil
}

// Snapshot is a read-only view of a draft.
type Snapshot struct {
	Grid    maze.Grid
	Start   *maze.Coord
	End     *maze.Coord
	Tool    maze.Cell
	Drawing bool
}

// Snapshot returns the draft's current grid, markers and tool state.
func (d *Draft) Snapshot() Snapshot {
	s := Snapshot{Grid: d.grid, Tool: d.tool, Drawing: d.drawing}
	if d.start != nil {
		start := *d.start
		s.Start = &start
	}
	if d.end != nil {
		end := *d.end
		s.End = &end
	}
	return s
}
