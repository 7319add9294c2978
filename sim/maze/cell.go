package maze

import "github.com/beka-birhanu/micromouse-api/sim"

// Cell represents a single cell of the ground-truth maze grid.
type Cell struct {
	// NorthWall indicates whether there is a wall on the north side of the cell.
	NorthWall bool
	// SouthWall indicates whether there is a wall on the south side of the cell.
	SouthWall bool
	// EastWall indicates whether there is a wall on the east side of the cell.
	EastWall bool
	// WestWall indicates whether there is a wall on the west side of the cell.
	WestWall bool
}

// HasWall reports whether the cell has a wall on the given side.
func (c *Cell) HasWall(d sim.Direction) bool {
	switch d {
	case sim.North:
		return c.NorthWall
	case sim.East:
		return c.EastWall
	case sim.South:
		return c.SouthWall
	default:
		return c.WestWall
	}
}

func (c *Cell) setWall(d sim.Direction, wall bool) {
	switch d {
	case sim.North:
		c.NorthWall = wall
	case sim.East:
		c.EastWall = wall
	case sim.South:
		c.SouthWall = wall
	default:
		c.WestWall = wall
	}
}

// OpenMask encodes the cell's open sides as a four-bit value: 1 north,
// 2 east, 4 south, 8 west. This is the on-disk and on-wire encoding of
// a maze cell.
func (c *Cell) OpenMask() uint8 {
	var mask uint8
	if !c.NorthWall {
		mask |= 1
	}
	if !c.EastWall {
		mask |= 2
	}
	if !c.SouthWall {
		mask |= 4
	}
	if !c.WestWall {
		mask |= 8
	}
	return mask
}
