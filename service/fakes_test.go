package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
	"github.com/mazehub/mazehub-api/service/i"
)

// nopLogger swallows all output.
type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

// staticTokenizer mints predictable tokens.
type staticTokenizer struct{}

func (staticTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	return fmt.Sprintf("token-for-%v", claims["username"]), nil
}

func (staticTokenizer) Decode(string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// memUserRepo is an in-memory stand-in for the Mongo user repository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*dmn.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *memUserRepo) Save(user *dmn.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if u.Username == user.Username && id != user.ID {
			return errors.New("username conflict")
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errors.New("user not found")
}

// memMazeRepo is an in-memory stand-in for the Mongo maze repository.
type memMazeRepo struct {
	mu      sync.Mutex
	mazes   map[uuid.UUID]*dmn.Maze
	saveErr error
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{mazes: make(map[uuid.UUID]*dmn.Maze)}
}

func (r *memMazeRepo) Save(maze *dmn.Maze) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *maze
	r.mazes[maze.ID] = &clone
	return nil
}

func (r *memMazeRepo) ByID(id uuid.UUID) (*dmn.Maze, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.mazes[id]
	if !ok {
		return nil, errors.New("maze not found")
	}
	clone := *m
	return &clone, nil
}

func (r *memMazeRepo) All() ([]*dmn.Maze, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*dmn.Maze, 0, len(r.mazes))
	for _, m := range r.mazes {
		clone := *m
		all = append(all, &clone)
	}
	sort.Slice(all, func(a, b int) bool {
		return all[a].CreatedAt.After(all[b].CreatedAt)
	})
	return all, nil
}

func (r *memMazeRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.mazes, id)
	return nil
}

// captureFeed records every published snapshot.
type captureFeed struct {
	mu        sync.Mutex
	snapshots [][]*dmn.Maze
}

func (f *captureFeed) Publish(snapshot []*dmn.Maze) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, snapshot)
}

func (f *captureFeed) Subscribe() (<-chan []*dmn.Maze, func()) {
	ch := make(chan []*dmn.Maze)
	return ch, func() {}
}

func (f *captureFeed) published() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snapshots)
}

func (f *captureFeed) last() []*dmn.Maze {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.snapshots) == 0 {
		return nil
	}
	return f.snapshots[len(f.snapshots)-1]
}

// memScoreboard records solves in memory.
type memScoreboard struct {
	mu        sync.Mutex
	records   map[uuid.UUID][]i.Score
	cleared   []uuid.UUID
	recordErr error
}

func newMemScoreboard() *memScoreboard {
	return &memScoreboard{records: make(map[uuid.UUID][]i.Score)}
}

func (s *memScoreboard) Record(_ context.Context, mazeID uuid.UUID, score i.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recordErr != nil {
		return s.recordErr
	}
	s.records[mazeID] = append(s.records[mazeID], score)
	return nil
}

func (s *memScoreboard) Top(_ context.Context, mazeID uuid.UUID, n int) ([]i.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := append([]i.Score(nil), s.records[mazeID]...)
	sort.Slice(scores, func(a, b int) bool { return scores[a].Millis < scores[b].Millis })
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores, nil
}

func (s *memScoreboard) Clear(_ context.Context, mazeID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, mazeID)
	s.cleared = append(s.cleared, mazeID)
	return nil
}

func (s *memScoreboard) recorded(mazeID uuid.UUID) []i.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]i.Score(nil), s.records[mazeID]...)
}
