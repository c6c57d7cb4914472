// pkg/physics/collision.go
package physics

// Axis selects which component of a displacement a resolution pass handles.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// ResolveMove moves rect by delta and returns the corrected top-left
// position. The horizontal component is applied and corrected first, then the
// vertical component starting from the horizontally corrected position. A
// blocked axis snaps the moving edge flush against the obstacle's facing edge
// while the other axis keeps moving, which makes entities slide along walls.
//
// Obstacles must not overlap each other and rect must not overlap any of
// them before the move. Violating either is a map authoring error and the
// result is undefined.
func ResolveMove(rect Rect, delta Vector2D, obstacles []Rect) Vector2D {
	rect.X += delta.X
	rect = resolveAxis(rect, delta.X, Horizontal, obstacles)
	rect.Y += delta.Y
	rect = resolveAxis(rect, delta.Y, Vertical, obstacles)
	return rect.Min()
}

// resolveAxis pushes rect back along one axis until it overlaps nothing.
// Each snap moves the rect toward its overlap-free start, so the loop ends
// after at most one pass per obstacle plus a final clean pass.
func resolveAxis(rect Rect, d float64, axis Axis, obstacles []Rect) Rect {
	if d == 0 {
		return rect
	}
	for pass := 0; pass <= len(obstacles); pass++ {
		moved := false
		for _, obs := range obstacles {
			if !rect.Overlaps(obs) {
				continue
			}
			rect = snap(rect, obs, d, axis)
			moved = true
		}
		if !moved {
			break
		}
	}
	return rect
}

func snap(rect, obs Rect, d float64, axis Axis) Rect {
	switch axis {
	case Horizontal:
		if d > 0 {
			rect.X = obs.Left() - rect.Width
		} else {
			rect.X = obs.Right()
		}
	case Vertical:
		if d > 0 {
			rect.Y = obs.Top() - rect.Height
		} else {
			rect.Y = obs.Bottom()
		}
	}
	return rect
}

// Collider resolves movement against a fixed set of obstacles, using a
// QuadTree to narrow each move to the obstacles near its swept area.
type Collider struct {
	obstacles []Rect
	index     *QuadTree
}

// NewCollider indexes obstacles for repeated ResolveMove calls.
func NewCollider(obstacles []Rect) *Collider {
	c := &Collider{obstacles: obstacles}
	if len(obstacles) == 0 {
		return c
	}
	bounds := obstacles[0]
	for _, o := range obstacles[1:] {
		bounds = bounds.Union(o)
	}
	c.index = NewQuadTree(bounds, 8)
	for i, o := range obstacles {
		c.index.Insert(o, i)
	}
	return c
}

// Obstacles returns the indexed obstacle rects.
func (c *Collider) Obstacles() []Rect {
	return c.obstacles
}

// Move resolves rect moving by delta against the nearby obstacles.
func (c *Collider) Move(rect Rect, delta Vector2D) Vector2D {
	if c.index == nil {
		return rect.Translate(delta).Min()
	}
	swept := rect.Union(rect.Translate(delta))
	ids := c.index.Query(swept)
	near := make([]Rect, 0, len(ids))
	for _, id := range ids {
		near = append(near, c.obstacles[id])
	}
	return ResolveMove(rect, delta, near)
}

// Blocked reports whether rect overlaps any obstacle.
func (c *Collider) Blocked(rect Rect) bool {
	if c.index == nil {
		return false
	}
	for _, id := range c.index.Query(rect) {
		if rect.Overlaps(c.obstacles[id]) {
			return true
		}
	}
	return false
}
