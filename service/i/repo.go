package i

import (
	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for operator persistence operations.
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

// MazeRepo defines the interface for stored maze definitions.
type MazeRepo interface {
	Save(record *dmn.MazeRecord) error
	ByID(id uuid.UUID) (*dmn.MazeRecord, error)
}

// RunRepo defines the interface for persisted simulation runs.
type RunRepo interface {
	Save(run *dmn.Run) error
	ByID(id uuid.UUID) (*dmn.Run, error)
}
