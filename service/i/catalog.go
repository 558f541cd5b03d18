package i

import (
	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
	"github.com/mazehub/mazehub-api/game/maze"
)

// MazeCatalog is the shared maze collection: document CRUD plus feed
// publication after every successful mutation.
type MazeCatalog interface {
	// Create persists a brand-new maze and returns the stored document
	// with its assigned id.
	Create(creator uuid.UUID, name string, grid maze.Grid, start, end maze.Coord) (*dmn.Maze, error)

	// Replace overwrites an existing maze by id, keeping its id and
	// creation time. Only the creator may replace.
	Replace(id, creator uuid.UUID, name string, grid maze.Grid, start, end maze.Coord) (*dmn.Maze, error)

	// Delete removes a maze and its scoreboard. Only the creator may delete.
	Delete(id, creator uuid.UUID) error

	// List returns every maze, newest first.
	List() ([]*dmn.Maze, error)

	// ByID returns one maze document.
	ByID(id uuid.UUID) (*dmn.Maze, error)
}
