// Package mazeapi exposes the shared maze collection: the lobby list,
// its live feed, single-maze reads, deletes and scoreboards.
package mazeapi

import (
	"time"

	dmn "github.com/mazehub/mazehub-api/domain"
	"github.com/mazehub/mazehub-api/game/maze"
)

// MazeResponse is one stored maze in transit. Grid carries the
// serialized cell table exactly as persisted.
type MazeResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatorID string     `json:"creatorId"`
	Grid      string     `json:"grid"`
	Start     maze.Coord `json:"start"`
	End       maze.Coord `json:"end"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toMazeResponse(doc *dmn.Maze) *MazeResponse {
	return &MazeResponse{
		ID:        doc.ID.String(),
		Name:      doc.Name,
		CreatorID: doc.CreatorID.String(),
		Grid:      doc.Grid,
		Start:     doc.Start,
		End:       doc.End,
		CreatedAt: doc.CreatedAt,
	}
}

func toMazeResponses(docs []*dmn.Maze) []*MazeResponse {
	responses := make([]*MazeResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, toMazeResponse(doc))
	}
	return responses
}
