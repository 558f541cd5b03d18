package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/game/player"
	"github.com/mazehub/mazehub-api/service/i"
)

type playSession struct {
	player     uuid.UUID
	mazeID     uuid.UUID
	engine     *player.Session
	startedAt  time.Time
	lastActive time.Time
}

// PlayManager owns every running play session. A session holds one
// traversal of one maze; leaving the player view ends it, and idle ones
// are swept away by the janitor.
type PlayManager struct {
	catalog        i.MazeCatalog
	userRepo       i.UserRepo
	scoreboard     i.Scoreboard
	idleExpiration time.Duration
	logger         i.Logger
	sessions       map[uuid.UUID]*playSession
	janitor        *time.Ticker
	stop           chan bool
	sync.Mutex
}

// PlayManagerConfig holds the dependencies for a PlayManager.
type PlayManagerConfig struct {
	Catalog        i.MazeCatalog
	UserRepo       i.UserRepo
	Scoreboard     i.Scoreboard
	IdleExpiration time.Duration
	Logger         i.Logger
}

// NewPlayManager creates a PlayManager and starts its expiry janitor.
func NewPlayManager(c *PlayManagerConfig) (*PlayManager, error) {
	m := &PlayManager{
		catalog:        c.Catalog,
		userRepo:       c.UserRepo,
		scoreboard:     c.Scoreboard,
		idleExpiration: c.IdleExpiration,
		logger:         c.Logger,
		sessions:       make(map[uuid.UUID]*playSession),
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
func (m *PlayManager) Stop() {
	m.stop <- true
	m.janitor.Stop()
}

func (m *PlayManager) expireIdleSessions() {
	for {
		select {
		case <-m.stop:
			return
		case <-m.janitor.C:
			m.Lock()
			for id, s := range m.sessions {
				if time.Now().After(s.lastActive.Add(m.idleExpiration)) {
					delete(m.sessions, id)
					m.logger.Info(fmt.Sprintf("expired idle play session %s", id))
				}
			}
			m.Unlock()
		}
	}
}

// Start fetches a maze and opens a session on its start cell.
func (m *PlayManager) Start(playerID, mazeID uuid.UUID) (i.PlaySnapshot, error) {
	doc, err := m.catalog.ByID(mazeID)
	if err != nil {
		return i.PlaySnapshot{}, err
	}

	grid, err := doc.DecodeGrid()
	if err != nil {
		return i.PlaySnapshot{}, err
	}

	engine, err := player.NewSession(grid, doc.Start, doc.End)
	if err != nil {
		return i.PlaySnapshot{}, err
	}

	m.Lock()
	defer m.Unlock()

	id := uuid.New()
	for {
		if _, ok := m.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}

	now := time.Now()
	s := &playSession{
		player:     playerID,
		mazeID:     doc.ID,
		engine:     engine,
		startedAt:  now,
		lastActive: now,
	}
	m.sessions[id] = s
	return m.snapshot(id, s, false, false), nil
}

// State returns the session's current position and visited set.
func (m *PlayManager) State(id, playerID uuid.UUID) (i.PlaySnapshot, error) {
	m.Lock()
	defer m.Unlock()

	s, err := m.get(id, playerID)
	if err != nil {
		return i.PlaySnapshot{}, err
	}
	return m.snapshot(id, s, false, false), nil
}

// Move applies one directional step. The first move to reach the end
// records the solve on the maze's scoreboard; a failed record is logged
// and the win still reported.
func (m *PlayManager) Move(id, playerID uuid.UUID, direction player.Direction) (i.PlaySnapshot, error) {
	m.Lock()
	defer m.Unlock()

	s, err := m.get(id, playerID)
	if err != nil {
		return i.PlaySnapshot{}, err
	}

	out, err := s.engine.Move(direction)
	if err != nil {
		return i.PlaySnapshot{}, err
	}

	if out.Won {
		m.recordSolve(s)
	}
	return m.snapshot(id, s, out.Moved, out.Won), nil
}

// End discards the session. Later calls against the id fail with
// i.ErrSessionNotFound.
func (m *PlayManager) End(id, playerID uuid.UUID) error {
	m.Lock()
	defer m.Unlock()

	if _, err := m.get(id, playerID); err != nil {
		return err
	}
	delete(m.sessions, id)
	return nil
}

// recordSolve stores the finished run on the scoreboard. Callers must
// hold the lock.
func (m *PlayManager) recordSolve(s *playSession) {
	username := "unknown"
	if user, err := m.userRepo.ByID(s.player); err == nil {
		username = user.Username
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	score := i.Score{
		PlayerID: s.player,
		Username: username,
		Millis:   time.Since(s.startedAt).Milliseconds(),
	}
	if err := m.scoreboard.Record(ctx, s.mazeID, score); err != nil {
		m.logger.Warning(fmt.Sprintf("recording solve for maze %s: %v", s.mazeID, err))
	}
}

// get returns the player-checked session and bumps its activity clock.
// Callers must hold the lock.
func (m *PlayManager) get(id, playerID uuid.UUID) (*playSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, i.ErrSessionNotFound
	}
	if s.player != playerID {
		return nil, i.ErrNotSessionOwner
	}
	s.lastActive = time.Now()
	return s, nil
}

func (m *PlayManager) snapshot(id uuid.UUID, s *playSession, moved, justWon bool) i.PlaySnapshot {
	return i.PlaySnapshot{
		ID:      id,
		MazeID:  s.mazeID,
		At:      s.engine.At(),
		Visited: s.engine.Visited(),
		Moves:   s.engine.Moves(),
		Won:     s.engine.Won(),
		Moved:   moved,
		JustWon: justWon,
	}
}
