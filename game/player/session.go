// Package player implements the maze traversal engine: directional moves
// with boundary and wall collision, visited-cell tracking and win
// detection against a fixed grid.
package player

import (
	"errors"

	"github.com/mazehub/mazehub-api/game/maze"
)

// Player-related errors.
var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrInvalidEndpoints = errors.New("start and end must be distinct open cells inside the grid")
)

// Direction of a single move.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// ParseDirection maps the wire names "up", "down", "left" and "right"
// onto directions.
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, ErrUnknownDirection
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

func (d Direction) valid() bool {
	return d >= Up && d <= Right
}

func directionDelta(d Direction) (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Outcome reports the result of one move.
type Outcome struct {
	Moved bool       // whether the step was taken
	Won   bool       // whether this exact step reached the end cell
	At    maze.Coord // position after the move
}

// Session is one traversal of one maze. It owns the player's position and
// visited set for its whole lifetime; callers on multiple goroutines must
// serialize access themselves. A session starts Active on the start cell
// and flips to won, for good, on reaching the end cell.
type Session struct {
	grid    maze.Grid
	start   maze.Coord
	end     maze.Coord
	at      maze.Coord
	visited map[maze.Coord]struct{}
	won     bool
	moves   int
}

// NewSession places a player on the start cell of the given grid.
func NewSession(grid maze.Grid, start, end maze.Coord) (*Session, error) {
	if !grid.InBounds(start) || !grid.InBounds(end) || start == end {
		return nil, ErrInvalidEndpoints
	}
	if grid.At(start) == maze.Wall || grid.At(end) == maze.Wall {
		return nil, ErrInvalidEndpoints
	}

	return &Session{
		grid:    grid,
		start:   start,
		end:     end,
		at:      start,
		visited: make(map[maze.Coord]struct{}),
	}, nil
}

// Move applies one directional step. Steps off the grid or into a wall
// are rejected without any state change. The win signal fires on the move
// that first reaches the end cell and never again, though moving around
// afterwards stays allowed.
func (s *Session) Move(d Direction) (Outcome, error) {
	if !d.valid() {
		return Outcome{At: s.at}, ErrUnknownDirection
	}

	dx, dy := directionDelta(d)
	candidate := s.at.Translate(dx, dy)

	if !s.grid.InBounds(candidate) || s.grid.At(candidate) == maze.Wall {
		return Outcome{At: s.at}, nil
	}

	s.at = candidate
	s.moves++

	if s.grid.At(candidate) == maze.Path || candidate == s.start {
		s.visited[candidate] = struct{}{}
	}

	if candidate == s.end && !s.won {
		s.won = true
		return Outcome{Moved: true, Won: true, At: s.at}, nil
	}
	return Outcome{Moved: true, At: s.at}, nil
}

// At returns the player's current position.
func (s *Session) At() maze.Coord {
	return s.at
}

// Start returns the session's start cell.
func (s *Session) Start() maze.Coord {
	return s.start
}

// End returns the session's end cell.
func (s *Session) End() maze.Coord {
	return s.end
}

// Grid returns the grid under traversal.
func (s *Session) Grid() maze.Grid {
	return s.grid
}

// Won reports whether the end cell has been reached.
func (s *Session) Won() bool {
	return s.won
}

// Moves returns the number of accepted moves so far.
func (s *Session) Moves() int {
	return s.moves
}

// Visited lists the distinct open cells entered so far, in no particular
// order.
func (s *Session) Visited() []maze.Coord {
	cells := make([]maze.Coord, 0, len(s.visited))
	for at := range s.visited {
		cells = append(cells, at)
	}
	return cells
}
