package maze

import (
	"fmt"
	"math/rand"
)

// node is a position in the scaffold's passage graph. Passage (row,col)
// maps to grid cell (2*col+1, 2*row+1); the odd rows and columns in
// between carry the walls.
type node struct {
	row, col int
}

// hop is one step of the random walk between two adjacent passage
// nodes.
type hop struct {
	from, to node
}

var walkDeltas = []node{
	{row: -1, col: 0},
	{row: 1, col: 0},
	{row: 0, col: 1},
	{row: 0, col: -1},
}

// Scaffold generates a rows×cols grid whose walls form a random perfect
// maze, built with Wilson's algorithm over the passage graph: every
// block is reachable from every other along exactly one route. Both
// dimensions must be odd and at least 3 so that passages and walls
// alternate cleanly. Start and end markers are not placed; authors put
// those down themselves.
func Scaffold(rows, cols int) (Grid, error) {
	if rows%2 == 0 || cols%2 == 0 {
		return Grid{}, fmt.Errorf("scaffold dimensions must be odd, got %dx%d", rows, cols)
	}
	if min(rows, cols) < 3 || max(rows, cols) > MaxDimension {
		return Grid{}, ErrInvalidDimensions
	}

	s := &scaffolder{
		passageRows: rows / 2,
		passageCols: cols / 2,
		cells:       make([][]Cell, rows),
	}
	for y := range s.cells {
		s.cells[y] = make([]Cell, cols)
		for x := range s.cells[y] {
			s.cells[y][x] = Wall
		}
	}

	s.run()
	return Grid{cells: s.cells}, nil
}

type scaffolder struct {
	passageRows int
	passageCols int
	cells       [][]Cell
}

// run walks the passage graph until every node is part of the maze.
func (s *scaffolder) run() {
	visited := make(map[node]struct{})

	start := s.randomNode()
	visited[start] = struct{}{}
	s.open(start)

	for len(visited) < s.passageRows*s.passageCols {
		for cell, h := range s.randomWalk(visited) {
			s.carve(h)
			visited[cell] = struct{}{}
		}
	}
}

// randomWalk wanders from a random unvisited node, keeping only the
// last exit taken from each node, until it reaches the visited region.
func (s *scaffolder) randomWalk(visited map[node]struct{}) map[node]hop {
	cell := s.randomUnvisitedNode(visited)
	visits := make(map[node]hop)

	for {
		neighbors := s.neighbors(cell)
		next := neighbors[rand.Intn(len(neighbors))]
		visits[cell] = hop{from: cell, to: next}
		if _, done := visited[next]; done {
			break
		}
		cell = next
	}

	return visits
}

// neighbors lists the passage nodes adjacent to n.
func (s *scaffolder) neighbors(n node) []node {
	var result []node
	for _, d := range walkDeltas {
		nbr := node{row: n.row + d.row, col: n.col + d.col}
		if nbr.row >= 0 && nbr.row < s.passageRows && nbr.col >= 0 && nbr.col < s.passageCols {
			result = append(result, nbr)
		}
	}
	return result
}

// carve opens both endpoints of a hop and the wall cell between them.
func (s *scaffolder) carve(h hop) {
	s.open(h.from)
	s.open(h.to)

	from := blockOf(h.from)
	to := blockOf(h.to)
	s.cells[(from.Y+to.Y)/2][(from.X+to.X)/2] = Path
}

// open turns the grid cell of a passage node into Path.
func (s *scaffolder) open(n node) {
	c := blockOf(n)
	s.cells[c.Y][c.X] = Path
}

func (s *scaffolder) randomNode() node {
	return node{row: rand.Intn(s.passageRows), col: rand.Intn(s.passageCols)}
}

func (s *scaffolder) randomUnvisitedNode(visited map[node]struct{}) node {
	for {
		n := s.randomNode()
		if _, seen := visited[n]; !seen {
			return n
		}
	}
}

// blockOf maps a passage node to its grid coordinate.
func blockOf(n node) Coord {
	return Coord{X: 2*n.col + 1, Y: 2*n.row + 1}
}
