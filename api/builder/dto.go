// Package builderapi exposes the authoring sessions: opening drafts,
// painting over the pointer protocol, and saving into the catalog.
package builderapi

import (
	"github.com/mazehub/mazehub-api/game/builder"
	"github.com/mazehub/mazehub-api/game/maze"
)

// OpenRequest asks for a new authoring session. MazeID resumes an
// existing document; Scaffold pre-carves a random maze into the draft.
type OpenRequest struct {
	MazeID   string `json:"mazeId"`
	Scaffold bool   `json:"scaffold"`
}

// ToolRequest arms a paint tool.
type ToolRequest struct {
	Tool string `json:"tool" binding:"required"`
}

// PointerRequest feeds one pointer gesture step into the draft.
type PointerRequest struct {
	Event string `json:"event" binding:"required"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// SaveRequest names the draft and asks for it to be persisted.
type SaveRequest struct {
	Name string `json:"name" binding:"required"`
}

// SessionResponse is a draft snapshot in transit. Grid uses the same
// serialized format as stored documents; the markers stay null until
// placed.
type SessionResponse struct {
	ID      string      `json:"id"`
	Grid    string      `json:"grid"`
	Start   *maze.Coord `json:"start"`
	End     *maze.Coord `json:"end"`
	Tool    string      `json:"tool"`
	Drawing bool        `json:"drawing"`
}

// PointerResponse is a snapshot plus whether the gesture painted a cell.
type PointerResponse struct {
	Applied bool `json:"applied"`
	SessionResponse
}

func toSessionResponse(id string, snap builder.Snapshot) *SessionResponse {
	return &SessionResponse{
		ID:      id,
		Grid:    snap.Grid.Encode(),
		Start:   snap.Start,
		End:     snap.End,
		Tool:    builder.ToolName(snap.Tool),
		Drawing: snap.Drawing,
	}
}
