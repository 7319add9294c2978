package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/beka-birhanu/micromouse-api/sim/maze"
	"github.com/google/uuid"
)

// MazeCatalog stores and retrieves maze definitions.
type MazeCatalog struct {
	mazeRepo i.MazeRepo
	logger   i.Logger

	// rngMu guards rng; controllers may generate concurrently.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewMazeCatalog creates a MazeCatalog backed by the given repository.
// The caller provides the randomness source for maze generation, so a
// seeded catalog generates reproducibly.
func NewMazeCatalog(mazeRepo i.MazeRepo, logger i.Logger, rng *rand.Rand) (*MazeCatalog, error) {
	return &MazeCatalog{
		mazeRepo: mazeRepo,
		logger:   logger,
		rng:      rng,
	}, nil
}

// Create parses a text maze definition and stores it under name.
func (c *MazeCatalog) Create(name, definition string) (*dmn.MazeRecord, error) {
	m, err := maze.Parse(strings.NewReader(definition))
	if err != nil {
		return nil, err
	}

	record := dmn.NewMazeRecord(name, m)
	if err := c.mazeRepo.Save(record); err != nil {
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("Stored maze %q (%dx%d) as %s", name, m.Dim(), m.Dim(), record.ID))
	return record, nil
}

// Generate creates a random maze of the given dimension with Wilson's
// algorithm and stores it under name.
func (c *MazeCatalog) Generate(name string, dim int) (*dmn.MazeRecord, error) {
	c.rngMu.Lock()
	m, err := maze.Generate(dim, c.rng)
	c.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	record := dmn.NewMazeRecord(name, m)
	if err := c.mazeRepo.Save(record); err != nil {
		return nil, err
	}

	c.logger.Info(fmt.Sprintf("Generated maze %q (%dx%d) as %s", name, dim, dim, record.ID))
	return record, nil
}

// Get retrieves a stored maze definition.
func (c *MazeCatalog) Get(id uuid.UUID) (*dmn.MazeRecord, error) {
	return c.mazeRepo.ByID(id)
}

// Render returns the ASCII rendering of a stored maze.
func (c *MazeCatalog) Render(id uuid.UUID) (string, error) {
	record, err := c.mazeRepo.ByID(id)
	if err != nil {
		return "", err
	}

	m, err := record.Maze()
	if err != nil {
		return "", err
	}

	return m.String(), nil
}
