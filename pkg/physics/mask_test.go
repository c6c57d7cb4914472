package physics

import (
	"image"
	"image/color"
	"testing"
)

func TestMaskFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{A: 255})
	img.Set(1, 0, color.NRGBA{A: 128})
	img.Set(2, 0, color.NRGBA{A: 127})
	img.Set(3, 1, color.NRGBA{R: 255, A: 200})

	m := MaskFromImage(img)

	if m.Width != 4 || m.Height != 2 {
		t.Fatalf("size = %dx%d, want 4x2", m.Width, m.Height)
	}
	tests := []struct {
		x, y     int
		expected bool
	}{
		{0, 0, true},
		{1, 0, true},
		{2, 0, false},
		{3, 0, false},
		{3, 1, true},
		{-1, 0, false},
		{4, 1, false},
	}
	for _, tt := range tests {
		if got := m.Get(tt.x, tt.y); got != tt.expected {
			t.Errorf("Get(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
	if m.Count() != 3 {
		t.Errorf("Count() = %d, want 3", m.Count())
	}
}

func TestMaskFromImage_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 12))
	img.Set(11, 11, color.NRGBA{A: 255})

	m := MaskFromImage(img)
	if !m.Get(1, 1) || m.Count() != 1 {
		t.Error("mask should be relative to the image's top-left")
	}
}

func TestFullMask(t *testing.T) {
	m := FullMask(3, 5)
	if m.Count() != 15 {
		t.Errorf("Count() = %d, want 15", m.Count())
	}
	if NewMask(-1, 2).Width != 0 {
		t.Error("negative width should clamp to zero")
	}
}

func TestMasksOverlap(t *testing.T) {
	// two 4x4 hollow rings; bounding boxes overlap but only some placements
	// put solid pixels on top of each other
	ring := NewMask(4, 4)
	for i := 0; i < 4; i++ {
		ring.Set(i, 0)
		ring.Set(i, 3)
		ring.Set(0, i)
		ring.Set(3, i)
	}
	dot := NewMask(1, 1)
	dot.Set(0, 0)

	tests := []struct {
		name     string
		a        *Mask
		aPos     Vector2D
		b        *Mask
		bPos     Vector2D
		expected bool
	}{
		{"dot_inside_hole", ring, Vector2D{}, dot, Vector2D{X: 1, Y: 2}, false},
		{"dot_on_edge", ring, Vector2D{}, dot, Vector2D{X: 3, Y: 1}, true},
		{"dot_outside_bounds", ring, Vector2D{}, dot, Vector2D{X: 4, Y: 0}, false},
		{"rings_offset_share_pixels", ring, Vector2D{}, ring, Vector2D{X: 3, Y: 3}, true},
		{"rounding", ring, Vector2D{X: 0.4}, dot, Vector2D{X: 3.6, Y: 0}, true},
		{"negative_offset", dot, Vector2D{X: 10, Y: 10}, ring, Vector2D{X: 7, Y: 8}, true},
		{"nil_mask", nil, Vector2D{}, dot, Vector2D{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MasksOverlap(tt.a, tt.aPos, tt.b, tt.bPos); got != tt.expected {
				t.Errorf("MasksOverlap() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
