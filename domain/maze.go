package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/beka-birhanu/micromouse-api/sim/maze"
)

// MazeRecord is a stored maze definition in its BSON form. Walls holds
// the row-major four-bit open masks of every cell, the same encoding
// the text definition format uses.
type MazeRecord struct {
	ID        uuid.UUID `bson:"_id"`
	Name      string    `bson:"name"`
	Dim       int       `bson:"dim"`
	Walls     []uint8   `bson:"walls"`
	CreatedAt time.Time `bson:"createdAt"`
}

// NewMazeRecord captures a parsed or generated maze for storage.
func NewMazeRecord(name string, m *maze.Maze) *MazeRecord {
	return &MazeRecord{
		ID:        uuid.New(),
		Name:      name,
		Dim:       m.Dim(),
		Walls:     m.WallMasks(),
		CreatedAt: time.Now().UTC(),
	}
}

// Maze rebuilds the ground-truth maze from the stored wall masks.
func (r *MazeRecord) Maze() (*maze.Maze, error) {
	return maze.FromWallMasks(r.Dim, r.Walls)
}
