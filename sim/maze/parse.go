package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beka-birhanu/micromouse-api/sim"
)

var ErrMalformedDefinition = errors.New("malformed maze definition")

// Parse reads a maze from its text definition. The first line holds the
// side length N; each of the following N lines holds N comma-separated
// four-bit open masks (1 north, 2 east, 4 south, 8 west), one line per
// row from top to bottom.
//
// The definition is validated: openings must mirror across shared walls
// and must never point out of the grid. An asymmetric definition is a
// maze bug, not something the engine tolerates at runtime.
func Parse(r io.Reader) (*Maze, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: missing dimension line", ErrMalformedDefinition)
	}
	dim, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("%w: dimension: %v", ErrMalformedDefinition, err)
	}

	// Reject a bad dimension before reading any rows.
	if _, err := New(dim); err != nil {
		return nil, err
	}

	masks := make([][]uint8, 0, dim)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != dim {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrMalformedDefinition, len(masks), len(fields), dim)
		}
		row := make([]uint8, dim)
		for c, f := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil || v < 0 || v > 15 {
				return nil, fmt.Errorf("%w: cell (%d,%d): %q is not a wall mask",
					ErrMalformedDefinition, len(masks), c, f)
			}
			row[c] = uint8(v)
		}
		masks = append(masks, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(masks) != dim {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrMalformedDefinition, len(masks), dim)
	}

	return FromWallMasks(dim, flatten(masks))
}

// ParseFile reads a maze definition from the file at path.
func ParseFile(path string) (*Maze, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// FromWallMasks rebuilds a maze from row-major four-bit open masks, the
// inverse of WallMasks. Openings are validated for symmetry and bounds.
func FromWallMasks(dim int, masks []uint8) (*Maze, error) {
	m, err := New(dim)
	if err != nil {
		return nil, err
	}
	if len(masks) != dim*dim {
		return nil, fmt.Errorf("%w: got %d masks, want %d", ErrMalformedDefinition, len(masks), dim*dim)
	}

	maskBits := [4]uint8{1, 2, 4, 8} // indexed by sim.Direction

	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			pos := sim.Position{Row: r, Col: c}
			mask := masks[r*dim+c]
			for _, d := range sim.Order {
				if mask&maskBits[d] == 0 {
					continue
				}
				next := pos.Next(d)
				if !m.InBound(next) {
					return nil, fmt.Errorf("%w: cell (%d,%d) opens %s out of the grid",
						ErrMalformedDefinition, r, c, d)
				}
				if masks[next.Row*dim+next.Col]&maskBits[d.Opposite()] == 0 {
					return nil, fmt.Errorf("%w: cell (%d,%d) opens %s but (%d,%d) walls it",
						ErrMalformedDefinition, r, c, d, next.Row, next.Col)
				}
				_ = m.OpenWall(pos, d)
			}
		}
	}

	return m, nil
}

func flatten(rows [][]uint8) []uint8 {
	flat := make([]uint8, 0, len(rows)*len(rows))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return flat
}
