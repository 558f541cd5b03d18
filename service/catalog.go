package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
	"github.com/mazehub/mazehub-api/game/maze"
	"github.com/mazehub/mazehub-api/service/i"
)

// Catalog implements the shared maze collection on top of the maze
// repository, pushing a fresh list snapshot to the feed after every
// successful mutation.
type Catalog struct {
	mazeRepo   i.MazeRepo
	feed       i.MazeFeed
	scoreboard i.Scoreboard
	logger     i.Logger
}

// CatalogConfig holds the dependencies for a Catalog.
type CatalogConfig struct {
	MazeRepo   i.MazeRepo
	Feed       i.MazeFeed
	Scoreboard i.Scoreboard
	Logger     i.Logger
}

// NewCatalog creates a Catalog from the given dependencies.
func NewCatalog(c *CatalogConfig) (*Catalog, error) {
	return &Catalog{
		mazeRepo:   c.MazeRepo,
		feed:       c.Feed,
		scoreboard: c.Scoreboard,
		logger:     c.Logger,
	}, nil
}

// Create persists a brand-new maze under a fresh id and announces the
// grown list.
func (c *Catalog) Create(creator uuid.UUID, name string, grid maze.Grid, start, end maze.Coord) (*dmn.Maze, error) {
	doc, err := dmn.NewMaze(dmn.MazeConfig{
		ID:        uuid.New(),
		Name:      name,
		CreatorID: creator,
		Grid:      grid,
		Start:     start,
		End:       end,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := c.mazeRepo.Save(doc); err != nil {
		return nil, err
	}

	c.publishList()
	return doc, nil
}

// Replace overwrites an existing maze, keeping its id and creation time.
func (c *Catalog) Replace(id, creator uuid.UUID, name string, grid maze.Grid, start, end maze.Coord) (*dmn.Maze, error) {
	existing, err := c.mazeRepo.ByID(id)
	if err != nil {
		return nil, err
	}
	if existing.CreatorID != creator {
		return nil, i.ErrNotMazeCreator
	}

	doc, err := dmn.NewMaze(dmn.MazeConfig{
		ID:        existing.ID,
		Name:      name,
		CreatorID: existing.CreatorID,
		Grid:      grid,
		Start:     start,
		End:       end,
		CreatedAt: existing.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	if err := c.mazeRepo.Save(doc); err != nil {
		return nil, err
	}

	c.publishList()
	return doc, nil
}

// Delete removes a maze together with its scoreboard.
func (c *Catalog) Delete(id, creator uuid.UUID) error {
	existing, err := c.mazeRepo.ByID(id)
	if err != nil {
		return err
	}
	if existing.CreatorID != creator {
		return i.ErrNotMazeCreator
	}

	if err := c.mazeRepo.Delete(id); err != nil {
		return err
	}

	// The board goes with the maze; a failed clear must not undo the
	// delete.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.scoreboard.Clear(ctx, id); err != nil {
		c.logger.Warning(fmt.Sprintf("clearing scoreboard for maze %s: %v", id, err))
	}

	c.publishList()
	return nil
}

// List returns every maze, newest first.
func (c *Catalog) List() ([]*dmn.Maze, error) {
	return c.mazeRepo.All()
}

// ByID returns one maze document.
func (c *Catalog) ByID(id uuid.UUID) (*dmn.Maze, error) {
	return c.mazeRepo.ByID(id)
}

// publishList pushes the current list to feed subscribers. A failed
// refresh only costs liveness, never the mutation that triggered it.
func (c *Catalog) publishList() {
	mazes, err := c.mazeRepo.All()
	if err != nil {
		c.logger.Warning(fmt.Sprintf("refreshing maze list for the feed: %v", err))
		return
	}
	c.feed.Publish(mazes)
}
