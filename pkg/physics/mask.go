package physics

import (
	"image"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// alphaThreshold is the 8-bit alpha a pixel must exceed to count as solid.
const alphaThreshold = 127

// Mask is a per-pixel opacity bitmap used for precise overlap tests.
type Mask struct {
	Width, Height int
	bits          *bitset.BitSet
}

// NewMask returns an empty (fully transparent) mask.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		bits:   bitset.New(uint(width * height)),
	}
}

// FullMask returns a mask with every pixel solid.
func FullMask(width, height int) *Mask {
	m := NewMask(width, height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.Set(x, y)
		}
	}
	return m
}

// MaskFromImage marks every pixel whose alpha exceeds 127 as solid.
func MaskFromImage(img image.Image) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a>>8 > alphaThreshold {
				m.Set(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
	return m
}

// Set marks the pixel at (x, y) as solid. Out of range pixels are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.bits.Set(uint(y*m.Width + x))
}

// Get reports whether the pixel at (x, y) is solid.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits.Test(uint(y*m.Width + x))
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	return int(m.bits.Count())
}

// MasksOverlap reports whether any solid pixel of a, placed with its top-left
// at aPos, coincides with a solid pixel of b placed at bPos. Positions are
// rounded to whole pixels before comparison.
func MasksOverlap(a *Mask, aPos Vector2D, b *Mask, bPos Vector2D) bool {
	if a == nil || b == nil {
		return false
	}
	ox := int(math.Round(bPos.X - aPos.X))
	oy := int(math.Round(bPos.Y - aPos.Y))

	// intersection in a's pixel space
	x0, y0 := max(0, ox), max(0, oy)
	x1, y1 := min(a.Width, ox+b.Width), min(a.Height, oy+b.Height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if a.Get(x, y) && b.Get(x-ox, y-oy) {
				return true
			}
		}
	}
	return false
}
