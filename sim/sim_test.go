package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection(t *testing.T) {
	t.Run("opposites", func(t *testing.T) {
		assert.Equal(t, South, North.Opposite())
		assert.Equal(t, West, East.Opposite())
		assert.Equal(t, North, South.Opposite())
		assert.Equal(t, East, West.Opposite())
	})

	t.Run("deltas move across the grid", func(t *testing.T) {
		p := Position{Row: 3, Col: 3}
		assert.Equal(t, Position{Row: 2, Col: 3}, p.Next(North))
		assert.Equal(t, Position{Row: 3, Col: 4}, p.Next(East))
		assert.Equal(t, Position{Row: 4, Col: 3}, p.Next(South))
		assert.Equal(t, Position{Row: 3, Col: 2}, p.Next(West))
	})
}

func TestRotations(t *testing.T) {
	t.Run("rotation between headings", func(t *testing.T) {
		assert.Equal(t, RotateNone, RotationTo(North, North))
		assert.Equal(t, RotateRight, RotationTo(North, East))
		assert.Equal(t, RotateAbout, RotationTo(North, South))
		assert.Equal(t, RotateLeft, RotationTo(North, West))
		assert.Equal(t, RotateLeft, RotationTo(East, North))
	})

	t.Run("turning is consistent with rotation", func(t *testing.T) {
		for _, h := range Order {
			for _, d := range Order {
				assert.Equal(t, d, h.Turned(RotationTo(h, d)), "from %s to %s", h, d)
			}
		}
	})
}
