/*
Package sensing translates raw range-sensor readings into absolute wall
facts and merges them into the learned map.

The agent carries three sensors facing left, front and right. A reading
of zero means the wall is immediately adjacent; any positive reading
means the neighbor cell in that direction is open. Only the
immediate-adjacency fact is recorded, never the rest of the visible
corridor, so exploration and race observe identical map-update rules.
*/
package sensing

import (
	"github.com/beka-birhanu/micromouse-api/sim"
	"github.com/beka-birhanu/micromouse-api/sim/gridmap"
)

// relative sensor order matches sim.Source.SensorDistances.
var relative = [3]sim.Rotation{sim.RotateLeft, sim.RotateNone, sim.RotateRight}

// Adapter reads sensors from a maze source and writes wall facts into a
// grid map.
type Adapter struct {
	src sim.Source
	m   *gridmap.Map
}

// New creates an adapter binding the maze source to the learned map.
func New(src sim.Source, m *gridmap.Map) *Adapter {
	return &Adapter{src: src, m: m}
}

// Sense queries the three sensors at pos facing heading and records the
// adjacency facts. A reading that contradicts the recorded map returns
// sim.ErrWallConflict, which is fatal for the run.
func (a *Adapter) Sense(pos sim.Position, heading sim.Direction) error {
	distances := a.src.SensorDistances(pos, heading)

	for i, rot := range relative {
		abs := heading.Turned(rot)
		var err error
		if distances[i] > 0 {
			err = a.m.RecordOpen(pos, abs)
		} else {
			err = a.m.RecordClosed(pos, abs)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
