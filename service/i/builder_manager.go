package i

import (
	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
	"github.com/mazehub/mazehub-api/game/builder"
	"github.com/mazehub/mazehub-api/game/maze"
)

// BuilderManager runs the server-side authoring sessions. Each session
// wraps one draft, belongs to one owner and lives until saved, discarded
// or expired.
type BuilderManager interface {
	// Open starts a fresh session, optionally pre-carved with a random
	// maze, and returns its id and first snapshot.
	Open(owner uuid.UUID, scaffold bool) (uuid.UUID, builder.Snapshot, error)

	// OpenExisting starts a session editing a stored maze. Only the
	// maze's creator may edit it.
	OpenExisting(owner, mazeID uuid.UUID) (uuid.UUID, builder.Snapshot, error)

	// Snapshot returns the session's current draft state.
	Snapshot(id, owner uuid.UUID) (builder.Snapshot, error)

	// SetTool arms a paint tool on the session's draft.
	SetTool(id, owner uuid.UUID, tool maze.Cell) (builder.Snapshot, error)

	// Pointer feeds one pointer event into the draft and reports whether
	// it painted a cell.
	Pointer(id, owner uuid.UUID, event builder.Event, at maze.Coord) (bool, builder.Snapshot, error)

	// Save validates the draft, persists it through the catalog and
	// closes the session.
	Save(id, owner uuid.UUID, name string) (*dmn.Maze, error)

	// Discard drops the session without saving.
	Discard(id, owner uuid.UUID) error
}
