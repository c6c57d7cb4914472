package input

import (
	"math"
	"testing"
)

func TestFromKeys(t *testing.T) {
	tests := []struct {
		name                  string
		up, down, left, right bool
		expected              Direction
	}{
		{"nothing held", false, false, false, false, None},
		{"up", true, false, false, false, North},
		{"up right", true, false, false, true, NorthEast},
		{"right", false, false, false, true, East},
		{"down right", false, true, false, true, SouthEast},
		{"down", false, true, false, false, South},
		{"down left", false, true, true, false, SouthWest},
		{"left", false, false, true, false, West},
		{"up left", true, false, true, false, NorthWest},
		{"opposites cancel", true, true, true, true, None},
		{"vertical cancels", true, true, false, true, East},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromKeys(tt.up, tt.down, tt.left, tt.right); got != tt.expected {
				t.Errorf("FromKeys() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDirection_VectorIsUnitOrZero(t *testing.T) {
	for d := None; d <= NorthWest; d++ {
		v := d.Vector()
		length := v.Length()
		if d == None {
			if length != 0 {
				t.Errorf("None.Vector() = %v, want zero", v)
			}
			continue
		}
		if math.Abs(length-1) > 1e-12 {
			t.Errorf("%v.Vector() length = %v, want 1", d, length)
		}
	}
	if Direction(42).Vector().Length() != 0 {
		t.Error("invalid direction should map to zero vector")
	}
}

func TestDirection_VectorOrientation(t *testing.T) {
	if v := North.Vector(); v.Y >= 0 {
		t.Errorf("North should point up the screen, got %v", v)
	}
	if v := SouthWest.Vector(); v.X >= 0 || v.Y <= 0 {
		t.Errorf("SouthWest = %v, want -x +y", v)
	}
}

func TestDirection_String(t *testing.T) {
	if North.String() != "n" || None.String() != "none" || Direction(-1).String() != "invalid" {
		t.Error("unexpected direction names")
	}
}
