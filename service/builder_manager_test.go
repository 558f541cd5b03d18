package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/game/builder"
	"github.com/mazehub/mazehub-api/game/maze"
	"github.com/mazehub/mazehub-api/service/i"
	"github.com/stretchr/testify/assert"
)

func newTestBuilderManager(t *testing.T, idle time.Duration) (*BuilderManager, *Catalog, *memMazeRepo) {
	t.Helper()

	catalog, repo, _, _ := newTestCatalog(t)
	manager, err := NewBuilderManager(&BuilderManagerConfig{
		Catalog:        catalog,
		Rows:           7,
		Cols:           7,
		IdleExpiration: idle,
		Logger:         nopLogger{},
	})
	assert.NoError(t, err)
	t.Cleanup(manager.Stop)
	return manager, catalog, repo
}

// paintMarkers stamps start and end through the pointer pipeline, the
// way a client would.
func paintMarkers(t *testing.T, m *BuilderManager, id, owner uuid.UUID, start, end maze.Coord) {
	t.Helper()

	_, err := m.SetTool(id, owner, maze.Start)
	assert.NoError(t, err)
	applied, _, err := m.Pointer(id, owner, builder.EventDown, start)
	assert.NoError(t, err)
	assert.True(t, applied)

	_, err = m.SetTool(id, owner, maze.End)
	assert.NoError(t, err)
	applied, _, err = m.Pointer(id, owner, builder.EventDown, end)
	assert.NoError(t, err)
	assert.True(t, applied)
}

func TestBuilderManagerOpen(t *testing.T) {
	manager, _, _ := newTestBuilderManager(t, time.Hour)
	owner := uuid.New()

	t.Run("blank draft starts all path with the wall tool", func(t *testing.T) {
		id, snap, err := manager.Open(owner, false)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, maze.Wall, snap.Tool)
		assert.Nil(t, snap.Start)
		assert.Nil(t, snap.End)
		assert.Equal(t, maze.Path, snap.Grid.At(maze.Coord{X: 3, Y: 3}))
	})

	t.Run("scaffolded draft comes pre-carved", func(t *testing.T) {
		_, snap, err := manager.Open(owner, true)
		assert.NoError(t, err)
		assert.Equal(t, maze.Wall, snap.Grid.At(maze.Coord{X: 0, Y: 0}))
		assert.Equal(t, maze.Path, snap.Grid.At(maze.Coord{X: 1, Y: 1}))
	})

	t.Run("sessions are private to their owner", func(t *testing.T) {
		id, _, err := manager.Open(owner, false)
		assert.NoError(t, err)

		_, err = manager.Snapshot(id, uuid.New())
		assert.ErrorIs(t, err, i.ErrNotSessionOwner)
	})

	t.Run("unknown sessions are reported", func(t *testing.T) {
		_, err := manager.Snapshot(uuid.New(), owner)
		assert.ErrorIs(t, err, i.ErrSessionNotFound)
	})
}

func TestBuilderManagerPointer(t *testing.T) {
	manager, _, _ := newTestBuilderManager(t, time.Hour)
	owner := uuid.New()

	id, _, err := manager.Open(owner, false)
	assert.NoError(t, err)

	t.Run("press and drag paint walls", func(t *testing.T) {
		applied, snap, err := manager.Pointer(id, owner, builder.EventDown, maze.Coord{X: 1, Y: 1})
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.True(t, snap.Drawing)
		assert.Equal(t, maze.Wall, snap.Grid.At(maze.Coord{X: 1, Y: 1}))

		applied, snap, err = manager.Pointer(id, owner, builder.EventEnter, maze.Coord{X: 2, Y: 1})
		assert.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, maze.Wall, snap.Grid.At(maze.Coord{X: 2, Y: 1}))

		applied, snap, err = manager.Pointer(id, owner, builder.EventUp, maze.Coord{X: 2, Y: 1})
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.False(t, snap.Drawing)
	})

	t.Run("enter without a press is inert", func(t *testing.T) {
		applied, snap, err := manager.Pointer(id, owner, builder.EventEnter, maze.Coord{X: 4, Y: 4})
		assert.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, maze.Path, snap.Grid.At(maze.Coord{X: 4, Y: 4}))
	})

	t.Run("out of bounds paints nothing", func(t *testing.T) {
		applied, _, err := manager.Pointer(id, owner, builder.EventDown, maze.Coord{X: 40, Y: 40})
		assert.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestBuilderManagerSave(t *testing.T) {
	manager, catalog, _ := newTestBuilderManager(t, time.Hour)
	owner := uuid.New()

	id, _, err := manager.Open(owner, false)
	assert.NoError(t, err)

	t.Run("validation failures keep the session alive", func(t *testing.T) {
		_, err := manager.Save(id, owner, "   ")
		assert.ErrorIs(t, err, builder.ErrNameMissing)

		_, err = manager.Save(id, owner, "no markers yet")
		assert.ErrorIs(t, err, builder.ErrStartMissing)

		_, err = manager.Snapshot(id, owner)
		assert.NoError(t, err)
	})

	paintMarkers(t, manager, id, owner, maze.Coord{X: 0, Y: 0}, maze.Coord{X: 6, Y: 6})

	t.Run("saving creates a document and closes the session", func(t *testing.T) {
		doc, err := manager.Save(id, owner, "hand built")
		assert.NoError(t, err)
		assert.Equal(t, "hand built", doc.Name)
		assert.Equal(t, owner, doc.CreatorID)
		assert.Equal(t, maze.Coord{X: 0, Y: 0}, doc.Start)
		assert.Equal(t, maze.Coord{X: 6, Y: 6}, doc.End)

		stored, err := catalog.ByID(doc.ID)
		assert.NoError(t, err)
		assert.Equal(t, doc.ID, stored.ID)

		_, err = manager.Snapshot(id, owner)
		assert.ErrorIs(t, err, i.ErrSessionNotFound)
	})
}

func TestBuilderManagerOpenExisting(t *testing.T) {
	manager, catalog, _ := newTestBuilderManager(t, time.Hour)
	owner := uuid.New()

	grid, start, end := markedGrid(t)
	doc, err := catalog.Create(owner, "stored", grid, start, end)
	assert.NoError(t, err)

	t.Run("only the creator may edit", func(t *testing.T) {
		_, _, err := manager.OpenExisting(uuid.New(), doc.ID)
		assert.ErrorIs(t, err, i.ErrNotMazeCreator)
	})

	t.Run("unknown mazes are reported", func(t *testing.T) {
		_, _, err := manager.OpenExisting(owner, uuid.New())
		assert.Error(t, err)
	})

	t.Run("resumed drafts adopt the stored markers", func(t *testing.T) {
		id, snap, err := manager.OpenExisting(owner, doc.ID)
		assert.NoError(t, err)
		assert.NotNil(t, snap.Start)
		assert.Equal(t, start, *snap.Start)
		assert.NotNil(t, snap.End)
		assert.Equal(t, end, *snap.End)

		t.Run("saving replaces instead of duplicating", func(t *testing.T) {
			saved, err := manager.Save(id, owner, "stored, remixed")
			assert.NoError(t, err)
			assert.Equal(t, doc.ID, saved.ID)

			list, err := catalog.List()
			assert.NoError(t, err)
			assert.Len(t, list, 1)
			assert.Equal(t, "stored, remixed", list[0].Name)
		})
	})
}

func TestBuilderManagerDiscard(t *testing.T) {
	manager, _, _ := newTestBuilderManager(t, time.Hour)
	owner := uuid.New()

	id, _, err := manager.Open(owner, false)
	assert.NoError(t, err)

	t.Run("only the owner may discard", func(t *testing.T) {
		err := manager.Discard(id, uuid.New())
		assert.ErrorIs(t, err, i.ErrNotSessionOwner)
	})

	t.Run("discarding closes the session", func(t *testing.T) {
		assert.NoError(t, manager.Discard(id, owner))
		_, err := manager.Snapshot(id, owner)
		assert.ErrorIs(t, err, i.ErrSessionNotFound)
	})
}

func TestBuilderManagerIdleExpiry(t *testing.T) {
	manager, _, _ := newTestBuilderManager(t, 20*time.Millisecond)
	owner := uuid.New()

	id, _, err := manager.Open(owner, false)
	assert.NoError(t, err)

	// Reading the snapshot counts as activity, so wait the sweep out
	// instead of polling.
	time.Sleep(150 * time.Millisecond)

	_, err = manager.Snapshot(id, owner)
	assert.ErrorIs(t, err, i.ErrSessionNotFound)
}
