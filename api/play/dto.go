// Package playapi exposes the play sessions: starting a traversal,
// moving over REST or the WebSocket channel, and ending the run.
package playapi

import (
	"github.com/mazehub/mazehub-api/game/maze"
	"github.com/mazehub/mazehub-api/service/i"
)

// StartRequest asks for a new play session on a stored maze.
type StartRequest struct {
	MazeID string `json:"mazeId" binding:"required"`
}

// MoveRequest carries one directional step.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// SessionResponse is one play session state in transit. Moved and
// JustWon describe the move that produced it; both stay false on plain
// state reads.
type SessionResponse struct {
	ID      string       `json:"id"`
	MazeID  string       `json:"mazeId"`
	At      maze.Coord   `json:"at"`
	Visited []maze.Coord `json:"visited"`
	Moves   int          `json:"moves"`
	Won     bool         `json:"won"`
	Moved   bool         `json:"moved"`
	JustWon bool         `json:"justWon"`
}

func toSessionResponse(snap i.PlaySnapshot) *SessionResponse {
	return &SessionResponse{
		ID:      snap.ID.String(),
		MazeID:  snap.MazeID.String(),
		At:      snap.At,
		Visited: snap.Visited,
		Moves:   snap.Moves,
		Won:     snap.Won,
		Moved:   snap.Moved,
		JustWon: snap.JustWon,
	}
}
