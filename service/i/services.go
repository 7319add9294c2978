package i

import (
	"context"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/google/uuid"
)

// Authenticator manages operator accounts.
type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*dmn.User, string, error)
}

// MazeCatalog manages stored maze definitions.
type MazeCatalog interface {
	// Create parses a text maze definition and stores it under name.
	Create(name, definition string) (*dmn.MazeRecord, error)

	// Generate creates and stores a random maze of the given dimension.
	Generate(name string, dim int) (*dmn.MazeRecord, error)

	// Get retrieves a stored maze.
	Get(id uuid.UUID) (*dmn.MazeRecord, error)

	// Render returns the ASCII rendering of a stored maze.
	Render(id uuid.UUID) (string, error)
}

// RunService executes and retrieves simulation runs.
type RunService interface {
	// Execute runs the full explore/plan/race cycle for the operator on
	// the stored maze and persists the outcome.
	Execute(ctx context.Context, userID, mazeID uuid.UUID) (*dmn.Run, error)

	// Get retrieves a persisted run.
	Get(id uuid.UUID) (*dmn.Run, error)
}
