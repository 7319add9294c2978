/*
Package sim defines the shared vocabulary of the simulation engine:
grid positions, absolute directions, rotations, the discrete action
model, trace records and the narrow interface through which the
controllers consume a ground-truth maze.

The engine itself lives in the subpackages: maze (ground truth),
gridmap (the agent's learned map), sensing (sensor-to-map adapter),
explore (mapping phase), plan (shortest-path policy) and race
(policy replay).
*/
package sim

import "errors"

// Engine-level errors. All of them are terminal for a run; the
// simulation never retries a failed operation.
var (
	// ErrWallConflict indicates a sensor observation that directly
	// contradicts a previously recorded wall fact.
	ErrWallConflict = errors.New("wall observation contradicts recorded map")

	// ErrBlockedMove indicates a commanded move into a true wall.
	ErrBlockedMove = errors.New("commanded move blocked by wall")

	// ErrNoRoute indicates the policy has no route from a cell to the goal.
	ErrNoRoute = errors.New("no route to goal")

	// ErrBudgetExceeded indicates the time budget ran out during the race.
	ErrBudgetExceeded = errors.New("time budget exceeded")
)

// MaxMovement is the maximum number of cells a single action may cover.
const MaxMovement = 3

// Position identifies a single cell in the grid. Row 0 is the top row;
// rows grow southward and columns grow eastward.
type Position struct {
	Row int
	Col int
}

// Direction is an absolute compass direction. It doubles as the agent's
// heading. The zero value is North, the conventional starting heading.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Order is the fixed tie-breaking order used wherever the engine must
// pick deterministically between equally good directions.
var Order = [4]Direction{North, East, South, West}

// Delta returns the row and column offsets of a unit move in d.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	default:
		return 0, -1
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	default:
		return "West"
	}
}

// Next returns the neighbor of p one cell away in d. The result may be
// out of bounds; callers check against the grid dimension.
func (p Position) Next(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Rotation is a turn in degrees relative to the current heading.
type Rotation int

const (
	RotateLeft  Rotation = -90
	RotateNone  Rotation = 0
	RotateRight Rotation = 90
	RotateAbout Rotation = 180
)

// RotationTo returns the rotation that turns heading h to face d.
func RotationTo(h, d Direction) Rotation {
	switch (d - h + 4) % 4 {
	case 1:
		return RotateRight
	case 2:
		return RotateAbout
	case 3:
		return RotateLeft
	default:
		return RotateNone
	}
}

// Turned returns the heading after applying rotation r to h.
func (d Direction) Turned(r Rotation) Direction {
	switch r {
	case RotateLeft:
		return (d + 3) % 4
	case RotateRight:
		return (d + 1) % 4
	case RotateAbout:
		return (d + 2) % 4
	default:
		return d
	}
}

// Action is one discrete agent command: an optional rotation followed by
// up to MaxMovement forward cell steps. Each action consumes exactly one
// time unit regardless of the number of cells covered.
type Action struct {
	Rotation Rotation
	Movement int
}

// Phase labels which controller produced a trace record.
type Phase uint8

const (
	PhaseExplore Phase = iota
	PhaseRace
)

func (p Phase) String() string {
	if p == PhaseRace {
		return "race"
	}
	return "explore"
}

// Record is one entry of the run trace: the action taken and the agent
// state after applying it. The first record of a phase carries a zero
// action and the initial state.
type Record struct {
	Seq      int
	Phase    Phase
	Row      int
	Col      int
	Heading  Direction
	Rotation Rotation
	Movement int
	Visits   int
}

// Source is the ground-truth maze as seen by the controllers. It is
// loaded once before exploration and immutable for the run. Sensing is
// synchronous and side-effect free.
type Source interface {
	// Dim returns the side length of the square grid.
	Dim() int

	// SensorDistances returns the number of open cells visible from pos
	// to the agent's left, front and right, in that order, given the
	// agent's heading. A zero means the wall is immediately adjacent.
	SensorDistances(pos Position, heading Direction) [3]int

	// IsPermissible reports whether an agent at pos may move one cell
	// in d without crossing a wall or leaving the grid.
	IsPermissible(pos Position, d Direction) bool

	// Start returns the fixed start cell.
	Start() Position

	// GoalCells returns the cells of the goal region.
	GoalCells() []Position
}
