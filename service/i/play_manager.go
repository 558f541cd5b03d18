package i

import (
	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/game/maze"
	"github.com/mazehub/mazehub-api/game/player"
)

// PlaySnapshot is a read-only view of one play session. Moved and
// JustWon describe the move that produced the snapshot; both stay false
// on plain state reads.
type PlaySnapshot struct {
	ID      uuid.UUID
	MazeID  uuid.UUID
	At      maze.Coord
	Visited []maze.Coord
	Moves   int
	Won     bool
	Moved   bool
	JustWon bool
}

// PlayManager runs the server-side play sessions. Each session wraps one
// traversal, belongs to one player and lives until ended or expired.
type PlayManager interface {
	// Start fetches a maze and opens a session on its start cell.
	Start(playerID, mazeID uuid.UUID) (PlaySnapshot, error)

	// State returns the session's current position and visited set.
	State(id, playerID uuid.UUID) (PlaySnapshot, error)

	// Move applies one directional step.
	Move(id, playerID uuid.UUID, direction player.Direction) (PlaySnapshot, error)

	// End discards the session; later calls against the id fail.
	End(id, playerID uuid.UUID) error
}
