package i

import (
	"context"

	"github.com/google/uuid"
)

// Score is one scoreboard row: a player's best solve of a maze.
type Score struct {
	PlayerID uuid.UUID `json:"playerId"`
	Username string    `json:"username"`
	Millis   int64     `json:"millis"`
}

// Scoreboard keeps per-maze best solve times.
type Scoreboard interface {
	// Record stores the solve when it beats the player's previous best.
	Record(ctx context.Context, mazeID uuid.UUID, score Score) error

	// Top returns the fastest n solves, best first.
	Top(ctx context.Context, mazeID uuid.UUID, n int) ([]Score, error)

	// Clear drops the whole board for a maze.
	Clear(ctx context.Context, mazeID uuid.UUID) error
}
