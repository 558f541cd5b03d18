package player

import (
	"testing"

	"github.com/mazehub/mazehub-api/game/maze"
	"github.com/stretchr/testify/assert"
)

func openGrid(t *testing.T, rows, cols int) maze.Grid {
	t.Helper()
	g, err := maze.New(rows, cols)
	assert.NoError(t, err)
	return g
}

func TestParseDirection(t *testing.T) {
	for name, want := range map[string]Direction{
		"up": Up, "down": Down, "left": Left, "right": Right,
	} {
		got, err := ParseDirection(name)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("north")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestNewSession(t *testing.T) {
	g := openGrid(t, 5, 5)

	t.Run("starts on the start cell", func(t *testing.T) {
		s, err := NewSession(g, maze.Coord{X: 0, Y: 0}, maze.Coord{X: 4, Y: 4})
		assert.NoError(t, err)
		assert.Equal(t, maze.Coord{X: 0, Y: 0}, s.At())
		assert.False(t, s.Won())
		assert.Empty(t, s.Visited())
	})

	t.Run("rejects broken endpoints", func(t *testing.T) {
		walled := g.WithCell(maze.Coord{X: 2, Y: 2}, maze.Wall)

		cases := []struct {
			start, end maze.Coord
		}{
			{maze.Coord{X: 0, Y: 0}, maze.Coord{X: 0, Y: 0}},
			{maze.Coord{X: -1, Y: 0}, maze.Coord{X: 4, Y: 4}},
			{maze.Coord{X: 0, Y: 0}, maze.Coord{X: 5, Y: 5}},
			{maze.Coord{X: 2, Y: 2}, maze.Coord{X: 4, Y: 4}},
			{maze.Coord{X: 0, Y: 0}, maze.Coord{X: 2, Y: 2}},
		}
		for _, c := range cases {
			_, err := NewSession(walled, c.start, c.end)
			assert.ErrorIs(t, err, ErrInvalidEndpoints, "start %v end %v", c.start, c.end)
		}
	})
}

func TestMoveBoundaryRejection(t *testing.T) {
	g := openGrid(t, 3, 3)

	corners := []struct {
		at      maze.Coord
		blocked []Direction
	}{
		{maze.Coord{X: 0, Y: 0}, []Direction{Up, Left}},
		{maze.Coord{X: 2, Y: 2}, []Direction{Down, Right}},
	}

	for _, c := range corners {
		end := maze.Coord{X: 1, Y: 1}
		s, err := NewSession(g, c.at, end)
		assert.NoError(t, err)

		for _, d := range c.blocked {
			out, err := s.Move(d)
			assert.NoError(t, err)
			assert.False(t, out.Moved)
			assert.Equal(t, c.at, out.At)
			assert.Equal(t, c.at, s.At())
		}
	}
}

func TestMoveWallRejection(t *testing.T) {
	// Start at (0,0) with a wall directly to the right.
	g := openGrid(t, 15, 15).WithCell(maze.Coord{X: 1, Y: 0}, maze.Wall)
	s, err := NewSession(g, maze.Coord{X: 0, Y: 0}, maze.Coord{X: 14, Y: 14})
	assert.NoError(t, err)

	out, err := s.Move(Right)
	assert.NoError(t, err)
	assert.False(t, out.Moved)
	assert.Equal(t, maze.Coord{X: 0, Y: 0}, s.At())
	assert.Empty(t, s.Visited())
}

func TestMoveRejectsUnknownDirection(t *testing.T) {
	g := openGrid(t, 3, 3)
	s, _ := NewSession(g, maze.Coord{X: 0, Y: 0}, maze.Coord{X: 2, Y: 2})

	_, err := s.Move(Direction(9))
	assert.ErrorIs(t, err, ErrUnknownDirection)
	assert.Equal(t, maze.Coord{X: 0, Y: 0}, s.At())
}

func TestMoveAcrossOpenGrid(t *testing.T) {
	// 15x15 all-path grid, start top-left, end bottom-right: fourteen
	// steps right and fourteen steps down land exactly on the end with
	// the win firing on the final step only.
	g := openGrid(t, 15, 15)
	s, err := NewSession(g, maze.Coord{X: 0, Y: 0}, maze.Coord{X: 14, Y: 14})
	assert.NoError(t, err)

	for i := 0; i < 14; i++ {
		out, err := s.Move(Right)
		assert.NoError(t, err)
		assert.True(t, out.Moved)
		assert.False(t, out.Won)
	}
	for i := 0; i < 13; i++ {
		out, err := s.Move(Down)
		assert.NoError(t, err)
		assert.True(t, out.Moved)
		assert.False(t, out.Won)
	}

	out, err := s.Move(Down)
	assert.NoError(t, err)
	assert.True(t, out.Moved)
	assert.True(t, out.Won)
	assert.Equal(t, maze.Coord{X: 14, Y: 14}, s.At())
	assert.True(t, s.Won())
	assert.Equal(t, 28, s.Moves())
}

func TestWinFiresOnce(t *testing.T) {
	g := openGrid(t, 3, 3)
	s, err := NewSession(g, maze.Coord{X: 0, Y: 0}, maze.Coord{X: 1, Y: 0})
	assert.NoError(t, err)

	out, err := s.Move(Right)
	assert.NoError(t, err)
	assert.True(t, out.Won)

	// Wander off the end cell and back onto it.
	out, err = s.Move(Right)
	assert.NoError(t, err)
	assert.True(t, out.Moved)
	assert.False(t, out.Won)

	out, err = s.Move(Left)
	assert.NoError(t, err)
	assert.True(t, out.Moved)
	assert.False(t, out.Won)
	assert.True(t, s.Won())
}

func TestVisitedTracking(t *testing.T) {
	// Markers painted into the grid: visited records path cells and the
	// start cell on re-entry, never the end cell.
	g := openGrid(t, 3, 3).
		WithCell(maze.Coord{X: 0, Y: 0}, maze.Start).
		WithCell(maze.Coord{X: 2, Y: 0}, maze.End)
	s, err := NewSession(g, maze.Coord{X: 0, Y: 0}, maze.Coord{X: 2, Y: 0})
	assert.NoError(t, err)

	s.Move(Right) // onto path (1,0)
	s.Move(Left)  // back onto start
	s.Move(Right) // path again, visited set must not grow
	assert.ElementsMatch(t, []maze.Coord{{X: 1, Y: 0}, {X: 0, Y: 0}}, s.Visited())

	out, err := s.Move(Right) // onto the end marker
	assert.NoError(t, err)
	assert.True(t, out.Won)
	assert.ElementsMatch(t, []maze.Coord{{X: 1, Y: 0}, {X: 0, Y: 0}}, s.Visited())
}
