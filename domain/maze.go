package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/game/maze"
)

// Maze-related errors.
var (
	ErrMazeNameMissing   = errors.New("maze needs a name")
	ErrEndpointOutOfGrid = errors.New("start and end must lie inside the grid")
	ErrEndpointsCoincide = errors.New("start and end must be different cells")
	ErrEndpointOnWall    = errors.New("start and end must be open cells")
)

// Maze represents the BSON/JSON version of one saved maze document.
type Maze struct {
	ID        uuid.UUID  `bson:"_id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	CreatorID uuid.UUID  `bson:"creatorId" json:"creatorId"`
	Grid      string     `bson:"grid" json:"grid"`
	Start     maze.Coord `bson:"start" json:"start"`
	End       maze.Coord `bson:"end" json:"end"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// MazeConfig holds parameters for assembling a maze document.
type MazeConfig struct {
	ID        uuid.UUID
	Name      string
	CreatorID uuid.UUID
	Grid      maze.Grid
	Start     maze.Coord
	End       maze.Coord
	CreatedAt time.Time
}

// NewMaze enforces the pre-persistence invariants and assembles the
// document: trimmed non-empty name, distinct in-bounds endpoints, neither
// endpoint on a wall. The grid is serialized on the way in.
func NewMaze(config MazeConfig) (*Maze, error) {
	name := strings.TrimSpace(config.Name)
	if name == "" {
		return nil, ErrMazeNameMissing
	}
	if !config.Grid.InBounds(config.Start) || !config.Grid.InBounds(config.End) {
		return nil, ErrEndpointOutOfGrid
	}
	if config.Start == config.End {
		return nil, ErrEndpointsCoincide
	}
	if config.Grid.At(config.Start) == maze.Wall || config.Grid.At(config.End) == maze.Wall {
		return nil, ErrEndpointOnWall
	}

	return &Maze{
		ID:        config.ID,
		Name:      name,
		CreatorID: config.CreatorID,
		Grid:      config.Grid.Encode(),
		Start:     config.Start,
		End:       config.End,
		CreatedAt: config.CreatedAt,
	}, nil
}

// DecodeGrid rebuilds the grid table stored in the document.
func (m *Maze) DecodeGrid() (maze.Grid, error) {
	return maze.Decode(m.Grid)
}
