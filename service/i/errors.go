package i

import "errors"

// Errors shared across the service contracts so callers can map them to
// transport responses.
var (
	// ErrNotMazeCreator is returned when someone else's maze is edited
	// or deleted.
	ErrNotMazeCreator = errors.New("only the creator may change a maze")

	// ErrSessionNotFound is returned for ids naming no live builder or
	// play session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotSessionOwner is returned when a session is driven by anyone
	// but the user who opened it.
	ErrNotSessionOwner = errors.New("session belongs to another user")
)
