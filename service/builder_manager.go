package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
	"github.com/mazehub/mazehub-api/game/builder"
	"github.com/mazehub/mazehub-api/game/maze"
	"github.com/mazehub/mazehub-api/service/i"
)

const defaultIdleExpiration = 30 * time.Minute

type builderSession struct {
	owner      uuid.UUID
	draft      *builder.Draft
	editingID  *uuid.UUID // set when editing an already stored maze
	lastActive time.Time
}

// BuilderManager owns every open authoring session. Sessions live in
// memory only: a draft that is neither saved nor touched before the idle
// cutoff is swept away, like an abandoned editor tab.
type BuilderManager struct {
	catalog        i.MazeCatalog
	rows           int
	cols           int
	idleExpiration time.Duration
	logger         i.Logger
	sessions       map[uuid.UUID]*builderSession
	janitor        *time.Ticker
	stop           chan bool
	sync.Mutex
}

// BuilderManagerConfig holds the dependencies and draft dimensions for a
// BuilderManager.
type BuilderManagerConfig struct {
	Catalog        i.MazeCatalog
	Rows           int
	Cols           int
	IdleExpiration time.Duration
	Logger         i.Logger
}

// NewBuilderManager creates a BuilderManager and starts its expiry
// janitor.
func NewBuilderManager(c *BuilderManagerConfig) (*BuilderManager, error) {
	m := &BuilderManager{
		catalog:        c.Catalog,
		rows:           c.Rows,
		cols:           c.Cols,
		idleExpiration: c.IdleExpiration,
		logger:         c.Logger,
		sessions:       make(map[uuid.UUID]*builderSession),
		stop:           make(chan bool, 1),
	}
	if m.idleExpiration <= 0 {
		m.idleExpiration = defaultIdleExpiration
	}

	m.janitor = time.NewTicker(m.idleExpiration)
	go m.expireIdleSessions()
	return m, nil
}

// Stop halts the expiry janitor.
func (m *BuilderManager) Stop() {
	m.stop <- true
	m.janitor.Stop()
}

// expireIdleSessions sweeps away sessions whose last activity exceeds
// the idle cutoff.
func (m *BuilderManager) expireIdleSessions() {
	for {
		select {
		case <-m.stop:
			return
		case <-m.janitor.C:
			m.Lock()
			for id, s := range m.sessions {
				if time.Now().After(s.lastActive.Add(m.idleExpiration)) {
					delete(m.sessions, id)
					m.logger.Info(fmt.Sprintf("expired idle builder session %s", id))
				}
			}
			m.Unlock()
		}
	}
}

// Open starts a fresh authoring session, optionally pre-carved with a
// random maze.
func (m *BuilderManager) Open(owner uuid.UUID, scaffold bool) (uuid.UUID, builder.Snapshot, error) {
	var draft *builder.Draft
	if scaffold {
		grid, err := maze.Scaffold(m.rows, m.cols)
		if err != nil {
			return uuid.Nil, builder.Snapshot{}, err
		}
		draft = builder.FromGrid(grid)
	} else {
		var err error
		draft, err = builder.New(m.rows, m.cols)
		if err != nil {
			return uuid.Nil, builder.Snapshot{}, err
		}
	}

	m.Lock()
	defer m.Unlock()
	id := m.saveSession(owner, draft, nil)
	return id, draft.Snapshot(), nil
}

// OpenExisting starts a session editing a stored maze. Only the creator
// may edit.
func (m *BuilderManager) OpenExisting(owner, mazeID uuid.UUID) (uuid.UUID, builder.Snapshot, error) {
	doc, err := m.catalog.ByID(mazeID)
	if err != nil {
		return uuid.Nil, builder.Snapshot{}, err
	}
	if doc.CreatorID != owner {
		return uuid.Nil, builder.Snapshot{}, i.ErrNotMazeCreator
	}

	grid, err := doc.DecodeGrid()
	if err != nil {
		return uuid.Nil, builder.Snapshot{}, err
	}
	draft := builder.FromGrid(grid)

	m.Lock()
	defer m.Unlock()
	editing := doc.ID
	id := m.saveSession(owner, draft, &editing)
	return id, draft.Snapshot(), nil
}

// Snapshot returns the session's current draft state.
func (m *BuilderManager) Snapshot(id, owner uuid.UUID) (builder.Snapshot, error) {
	m.Lock()
	defer m.Unlock()

	s, err := m.get(id, owner)
	if err != nil {
		return builder.Snapshot{}, err
	}
	return s.draft.Snapshot(), nil
}

// SetTool arms a paint tool on the session's draft.
func (m *BuilderManager) SetTool(id, owner uuid.UUID, tool maze.Cell) (builder.Snapshot, error) {
	m.Lock()
	defer m.Unlock()

	s, err := m.get(id, owner)
	if err != nil {
		return builder.Snapshot{}, err
	}
	if err := s.draft.SetTool(tool); err != nil {
		return builder.Snapshot{}, err
	}
	return s.draft.Snapshot(), nil
}

// Pointer feeds one pointer event into the draft and reports whether it
// painted a cell.
func (m *BuilderManager) Pointer(id, owner uuid.UUID, event builder.Event, at maze.Coord) (bool, builder.Snapshot, error) {
	m.Lock()
	defer m.Unlock()

	s, err := m.get(id, owner)
	if err != nil {
		return false, builder.Snapshot{}, err
	}
	applied := s.draft.Apply(event, at)
	return applied, s.draft.Snapshot(), nil
}

// Save validates the draft, persists it through the catalog and closes
// the session. Fresh drafts become new documents; resumed ones replace
// their original.
func (m *BuilderManager) Save(id, owner uuid.UUID, name string) (*dmn.Maze, error) {
	m.Lock()
	defer m.Unlock()

	s, err := m.get(id, owner)
	if err != nil {
		return nil, err
	}
	if err := s.draft.ValidateForSave(name); err != nil {
		return nil, err
	}

	snap := s.draft.Snapshot()
	var doc *dmn.Maze
	if s.editingID != nil {
		doc, err = m.catalog.Replace(*s.editingID, owner, name, snap.Grid, *snap.Start, *snap.End)
	} else {
		doc, err = m.catalog.Create(owner, name, snap.Grid, *snap.Start, *snap.End)
	}
	if err != nil {
		return nil, err
	}

	delete(m.sessions, id)
	return doc, nil
}

// Discard drops the session without saving.
func (m *BuilderManager) Discard(id, owner uuid.UUID) error {
	m.Lock()
	defer m.Unlock()

	if _, err := m.get(id, owner); err != nil {
		return err
	}
	delete(m.sessions, id)
	return nil
}

// saveSession registers a session under a fresh id. Callers must hold
// the lock.
func (m *BuilderManager) saveSession(owner uuid.UUID, draft *builder.Draft, editing *uuid.UUID) uuid.UUID {
	id := uuid.New()
	for {
		if _, ok := m.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}

	m.sessions[id] = &builderSession{
		owner:      owner,
		draft:      draft,
		editingID:  editing,
		lastActive: time.Now(),
	}
	return id
}

// get returns the owner-checked session and bumps its activity clock.
// Callers must hold the lock.
func (m *BuilderManager) get(id, owner uuid.UUID) (*builderSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, i.ErrSessionNotFound
	}
	if s.owner != owner {
		return nil, i.ErrNotSessionOwner
	}
	s.lastActive = time.Now()
	return s, nil
}
