// Package input defines the per-frame controller snapshot consumed by the
// session loop. Frontends translate their own key state into a Snapshot.
package input

import (
	"math"

	"github.com/opd-ai/go-vampires/pkg/physics"
)

// Direction is one of the eight compass directions, or None.
type Direction int

const (
	None Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{"none", "n", "ne", "e", "se", "s", "sw", "w", "nw"}

func (d Direction) String() string {
	if d < None || int(d) >= len(directionNames) {
		return "invalid"
	}
	return directionNames[d]
}

// Vector returns the unit vector for d in screen space (Y grows downward).
// None and invalid values map to the zero vector.
func (d Direction) Vector() physics.Vector2D {
	const diag = math.Sqrt2 / 2
	switch d {
	case North:
		return physics.Vector2D{Y: -1}
	case NorthEast:
		return physics.Vector2D{X: diag, Y: -diag}
	case East:
		return physics.Vector2D{X: 1}
	case SouthEast:
		return physics.Vector2D{X: diag, Y: diag}
	case South:
		return physics.Vector2D{Y: 1}
	case SouthWest:
		return physics.Vector2D{X: -diag, Y: diag}
	case West:
		return physics.Vector2D{X: -1}
	case NorthWest:
		return physics.Vector2D{X: -diag, Y: -diag}
	default:
		return physics.Vector2D{}
	}
}

// FromKeys derives a direction from held directional keys. Opposite keys
// cancel out.
func FromKeys(up, down, left, right bool) Direction {
	dx, dy := 0, 0
	if left {
		dx--
	}
	if right {
		dx++
	}
	if up {
		dy--
	}
	if down {
		dy++
	}
	switch {
	case dx == 0 && dy < 0:
		return North
	case dx > 0 && dy < 0:
		return NorthEast
	case dx > 0 && dy == 0:
		return East
	case dx > 0 && dy > 0:
		return SouthEast
	case dx == 0 && dy > 0:
		return South
	case dx < 0 && dy > 0:
		return SouthWest
	case dx < 0 && dy == 0:
		return West
	case dx < 0 && dy < 0:
		return NorthWest
	default:
		return None
	}
}

// Snapshot is the controller state sampled once per frame.
type Snapshot struct {
	Quit      bool
	Fire      bool
	Direction Direction
}
