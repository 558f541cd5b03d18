package i

import (
	"github.com/google/uuid"
	dmn "github.com/mazehub/mazehub-api/domain"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// MazeRepo defines the interface for maze document persistence.
type MazeRepo interface {
	// Save inserts or fully replaces a maze document by its id.
	Save(maze *dmn.Maze) error

	// ByID retrieves a maze by its unique ID.
	// Returns an error if the maze is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.Maze, error)

	// All retrieves every maze, newest first.
	All() ([]*dmn.Maze, error)

	// Delete removes a maze by its id. Deleting a missing maze is not an error.
	Delete(id uuid.UUID) error
}
