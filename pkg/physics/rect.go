package physics

// overlapEpsilon absorbs float error left behind by edge snapping, so a rect
// snapped flush against another never counts as overlapping it.
const overlapEpsilon = 1e-9

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect builds a rect from a top-left position and a size.
func NewRect(pos Vector2D, width, height float64) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: width, Height: height}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Min returns the top-left corner.
func (r Rect) Min() Vector2D {
	return Vector2D{X: r.X, Y: r.Y}
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Vector2D {
	return Vector2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate returns the rect moved by d.
func (r Rect) Translate(d Vector2D) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Overlaps reports whether the two rects share interior area.
// Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right()-overlapEpsilon &&
		r.Right() > o.Left()+overlapEpsilon &&
		r.Top() < o.Bottom()-overlapEpsilon &&
		r.Bottom() > o.Top()+overlapEpsilon
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left() >= r.Left() && o.Right() <= r.Right() &&
		o.Top() >= r.Top() && o.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether p lies inside r, including the top-left edges.
func (r Rect) ContainsPoint(p Vector2D) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Union returns the smallest rect covering both.
func (r Rect) Union(o Rect) Rect {
	left := min(r.Left(), o.Left())
	top := min(r.Top(), o.Top())
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}
