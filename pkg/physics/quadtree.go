package physics

import "sort"

// QuadTree indexes static rectangles for broad-phase queries. Items live in
// the deepest node whose boundary fully contains them; rects straddling a
// split stay in the parent.
type QuadTree struct {
	Boundary Rect
	Capacity int
	Items    []quadItem
	Divided  bool
	children [4]*QuadTree
	depth    int
}

type quadItem struct {
	rect Rect
	id   int
}

const maxQuadDepth = 8

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Items:    make([]quadItem, 0, capacity),
	}
}

// Insert adds rect under id. It returns false when rect lies outside the
// tree's boundary.
func (qt *QuadTree) Insert(rect Rect, id int) bool {
	if !qt.Boundary.ContainsRect(rect) {
		return false
	}
	qt.insert(quadItem{rect: rect, id: id})
	return true
}

func (qt *QuadTree) insert(item quadItem) {
	if qt.Divided {
		if child := qt.childFor(item.rect); child != nil {
			child.insert(item)
			return
		}
		qt.Items = append(qt.Items, item)
		return
	}

	qt.Items = append(qt.Items, item)
	if len(qt.Items) > qt.Capacity && qt.depth < maxQuadDepth {
		qt.Subdivide()
	}
}

// Subdivide splits the node into four quadrants and pushes down every item
// that fits entirely inside one of them.
func (qt *QuadTree) Subdivide() {
	if qt.Divided {
		return
	}
	b := qt.Boundary
	w, h := b.Width/2, b.Height/2
	quads := [4]Rect{
		{X: b.X, Y: b.Y, Width: w, Height: h},
		{X: b.X + w, Y: b.Y, Width: w, Height: h},
		{X: b.X, Y: b.Y + h, Width: w, Height: h},
		{X: b.X + w, Y: b.Y + h, Width: w, Height: h},
	}
	for i, q := range quads {
		qt.children[i] = NewQuadTree(q, qt.Capacity)
		qt.children[i].depth = qt.depth + 1
	}
	qt.Divided = true

	kept := qt.Items[:0]
	for _, item := range qt.Items {
		if child := qt.childFor(item.rect); child != nil {
			child.insert(item)
			continue
		}
		kept = append(kept, item)
	}
	qt.Items = kept
}

func (qt *QuadTree) childFor(r Rect) *QuadTree {
	for _, c := range qt.children {
		if c.Boundary.ContainsRect(r) {
			return c
		}
	}
	return nil
}

// Query returns the ids of every rect that intersects or touches area, in
// ascending id order.
func (qt *QuadTree) Query(area Rect) []int {
	found := qt.query(area, nil)
	sort.Ints(found)
	return found
}

func (qt *QuadTree) query(area Rect, found []int) []int {
	if !touches(qt.Boundary, area) {
		return found
	}
	for _, item := range qt.Items {
		if touches(item.rect, area) {
			found = append(found, item.id)
		}
	}
	if !qt.Divided {
		return found
	}
	for _, c := range qt.children {
		found = c.query(area, found)
	}
	return found
}

// Len returns the number of indexed rects.
func (qt *QuadTree) Len() int {
	n := len(qt.Items)
	if qt.Divided {
		for _, c := range qt.children {
			n += c.Len()
		}
	}
	return n
}

// touches is an inclusive intersection test.
func touches(a, b Rect) bool {
	return a.Left() <= b.Right() && a.Right() >= b.Left() &&
		a.Top() <= b.Bottom() && a.Bottom() >= b.Top()
}
