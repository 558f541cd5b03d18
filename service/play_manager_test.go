package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
	"github.com/mazehub/mazehub-api/game/maze"
	"github.com/mazehub/mazehub-api/game/player"
	"github.com/mazehub/mazehub-api/service/i"
	"github.com/stretchr/testify/assert"
)

func newTestPlayManager(t *testing.T) (*PlayManager, *Catalog, *memUserRepo, *memScoreboard) {
	t.Helper()

	catalog, _, _, scoreboard := newTestCatalog(t)
	users := newMemUserRepo()
	manager, err := NewPlayManager(&PlayManagerConfig{
		Catalog:        catalog,
		UserRepo:       users,
		Scoreboard:     scoreboard,
		IdleExpiration: time.Hour,
		Logger:         nopLogger{},
	})
	assert.NoError(t, err)
	t.Cleanup(manager.Stop)
	return manager, catalog, users, scoreboard
}

// playableMaze stores a small maze: start at the origin, end two cells
// to the right, one wall below the corridor.
func playableMaze(t *testing.T, catalog *Catalog) *dmn.Maze {
	t.Helper()

	grid, err := maze.New(5, 5)
	assert.NoError(t, err)

	start := maze.Coord{X: 0, Y: 0}
	end := maze.Coord{X: 2, Y: 0}
	grid = grid.WithCell(maze.Coord{X: 1, Y: 1}, maze.Wall)
	grid = grid.WithCell(start, maze.Start)
	grid = grid.WithCell(end, maze.End)

	doc, err := catalog.Create(uuid.New(), "playable", grid, start, end)
	assert.NoError(t, err)
	return doc
}

func TestPlayManagerStart(t *testing.T) {
	manager, catalog, _, _ := newTestPlayManager(t)
	doc := playableMaze(t, catalog)
	playerID := uuid.New()

	snap, err := manager.Start(playerID, doc.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, snap.ID)
	assert.Equal(t, doc.ID, snap.MazeID)
	assert.Equal(t, doc.Start, snap.At)
	assert.Empty(t, snap.Visited)
	assert.Zero(t, snap.Moves)
	assert.False(t, snap.Won)

	t.Run("unknown mazes are reported", func(t *testing.T) {
		_, err := manager.Start(playerID, uuid.New())
		assert.Error(t, err)
	})

	t.Run("state requires the owning player", func(t *testing.T) {
		_, err := manager.State(snap.ID, uuid.New())
		assert.ErrorIs(t, err, i.ErrNotSessionOwner)

		got, err := manager.State(snap.ID, playerID)
		assert.NoError(t, err)
		assert.Equal(t, snap.At, got.At)
	})
}

func TestPlayManagerMove(t *testing.T) {
	manager, catalog, users, scoreboard := newTestPlayManager(t)
	doc := playableMaze(t, catalog)

	user := dmn.NewGuestUser(uuid.New())
	assert.NoError(t, users.Save(user))

	snap, err := manager.Start(user.ID, doc.ID)
	assert.NoError(t, err)
	id := snap.ID

	t.Run("blocked moves leave the session in place", func(t *testing.T) {
		got, err := manager.Move(id, user.ID, player.Up)
		assert.NoError(t, err)
		assert.False(t, got.Moved)
		assert.Equal(t, doc.Start, got.At)
		assert.Zero(t, got.Moves)
	})

	t.Run("open moves advance and record the trail", func(t *testing.T) {
		got, err := manager.Move(id, user.ID, player.Right)
		assert.NoError(t, err)
		assert.True(t, got.Moved)
		assert.Equal(t, maze.Coord{X: 1, Y: 0}, got.At)
		assert.Contains(t, got.Visited, maze.Coord{X: 1, Y: 0})
		assert.Equal(t, 1, got.Moves)
	})

	t.Run("walls block", func(t *testing.T) {
		got, err := manager.Move(id, user.ID, player.Down)
		assert.NoError(t, err)
		assert.False(t, got.Moved)
		assert.Equal(t, maze.Coord{X: 1, Y: 0}, got.At)
	})

	t.Run("reaching the end wins and records the solve", func(t *testing.T) {
		got, err := manager.Move(id, user.ID, player.Right)
		assert.NoError(t, err)
		assert.True(t, got.Moved)
		assert.True(t, got.Won)
		assert.True(t, got.JustWon)

		records := scoreboard.recorded(doc.ID)
		assert.Len(t, records, 1)
		assert.Equal(t, user.ID, records[0].PlayerID)
		assert.Equal(t, user.Username, records[0].Username)
		assert.GreaterOrEqual(t, records[0].Millis, int64(0))
	})

	t.Run("the win fires once", func(t *testing.T) {
		got, err := manager.Move(id, user.ID, player.Left)
		assert.NoError(t, err)
		assert.True(t, got.Won)
		assert.False(t, got.JustWon)

		got, err = manager.Move(id, user.ID, player.Right)
		assert.NoError(t, err)
		assert.True(t, got.Won)
		assert.False(t, got.JustWon)
		assert.Len(t, scoreboard.recorded(doc.ID), 1)
	})

	t.Run("unknown directions error", func(t *testing.T) {
		_, err := manager.Move(id, user.ID, player.Direction(99))
		assert.ErrorIs(t, err, player.ErrUnknownDirection)
	})
}

func TestPlayManagerRecordFailureKeepsWin(t *testing.T) {
	manager, catalog, _, scoreboard := newTestPlayManager(t)
	doc := playableMaze(t, catalog)
	scoreboard.recordErr = errors.New("redis is down")

	playerID := uuid.New()
	snap, err := manager.Start(playerID, doc.ID)
	assert.NoError(t, err)

	_, err = manager.Move(snap.ID, playerID, player.Right)
	assert.NoError(t, err)
	got, err := manager.Move(snap.ID, playerID, player.Right)
	assert.NoError(t, err)
	assert.True(t, got.JustWon)
	assert.Empty(t, scoreboard.recorded(doc.ID))
}

func TestPlayManagerSolverWithoutAccountRecordsUnknown(t *testing.T) {
	manager, catalog, _, scoreboard := newTestPlayManager(t)
	doc := playableMaze(t, catalog)

	playerID := uuid.New() // never saved in the user repo
	snap, err := manager.Start(playerID, doc.ID)
	assert.NoError(t, err)

	_, err = manager.Move(snap.ID, playerID, player.Right)
	assert.NoError(t, err)
	_, err = manager.Move(snap.ID, playerID, player.Right)
	assert.NoError(t, err)

	records := scoreboard.recorded(doc.ID)
	assert.Len(t, records, 1)
	assert.Equal(t, "unknown", records[0].Username)
}

func TestPlayManagerEnd(t *testing.T) {
	manager, catalog, _, _ := newTestPlayManager(t)
	doc := playableMaze(t, catalog)
	playerID := uuid.New()

	snap, err := manager.Start(playerID, doc.ID)
	assert.NoError(t, err)

	t.Run("only the player may end", func(t *testing.T) {
		err := manager.End(snap.ID, uuid.New())
		assert.ErrorIs(t, err, i.ErrNotSessionOwner)
	})

	t.Run("ending closes the session", func(t *testing.T) {
		assert.NoError(t, manager.End(snap.ID, playerID))
		_, err := manager.State(snap.ID, playerID)
		assert.ErrorIs(t, err, i.ErrSessionNotFound)

		err = manager.End(snap.ID, playerID)
		assert.ErrorIs(t, err, i.ErrSessionNotFound)
	})
}
