package entity

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/opd-ai/go-vampires/pkg/physics"
)

// fakeWorld moves freely unless blocked, and pursues a fixed target.
type fakeWorld struct {
	target    physics.Vector2D
	obstacles []physics.Rect
}

func (w fakeWorld) Move(rect physics.Rect, delta physics.Vector2D) physics.Vector2D {
	return physics.ResolveMove(rect, delta, w.obstacles)
}

func (w fakeWorld) Target() physics.Vector2D { return w.target }

func solidImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{A: 255})
		}
	}
	return img
}

func TestCapability_Has(t *testing.T) {
	c := CapActive | CapRenderable
	if !c.Has(CapActive) || !c.Has(CapActive|CapRenderable) {
		t.Error("expected flags to be present")
	}
	if c.Has(CapHostile) || c.Has(CapActive|CapHostile) {
		t.Error("unexpected flag reported")
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		Ground: "ground", Obstacle: "obstacle", Player: "player",
		Hostile: "hostile", Projectile: "projectile", Kind(99): "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestFactoriesAssignCapabilities(t *testing.T) {
	frame := NewFrame(solidImage(4, 4))
	anim := NewAnimation(5, frame)

	tests := []struct {
		name     string
		entity   *Entity
		expected Capability
	}{
		{"ground", NewGround(physics.Vector2D{}, frame), CapActive | CapRenderable},
		{"visible obstacle", NewObstacle(physics.Vector2D{}, frame, true), CapActive | CapRenderable | CapCollidable},
		{"invisible obstacle", NewObstacle(physics.Vector2D{}, BoxFrame(4, 4), false), CapActive | CapCollidable},
		{"player", NewPlayer(physics.Vector2D{}, map[string]*Animation{"down": anim}, 100, NewWeapon(0)), CapActive | CapRenderable},
		{"hostile", NewHostile("bat", physics.Vector2D{}, NewAnimation(5, frame), 100), CapActive | CapRenderable | CapHostile},
		{"projectile", NewProjectile(physics.Vector2D{}, frame, physics.Vector2D{X: 1}, 0), CapActive | CapRenderable | CapProjectile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.entity.Caps != tt.expected {
				t.Errorf("Caps = %b, expected %b", tt.entity.Caps, tt.expected)
			}
		})
	}
}

func TestEntity_RectAndCenter(t *testing.T) {
	e := NewGround(physics.Vector2D{X: 10, Y: 20}, NewFrame(solidImage(8, 6)))

	if r := e.Rect(); r != (physics.Rect{X: 10, Y: 20, Width: 8, Height: 6}) {
		t.Errorf("Rect() = %v", r)
	}
	if c := e.Center(); c != (physics.Vector2D{X: 14, Y: 23}) {
		t.Errorf("Center() = %v", c)
	}
	e.SetCenter(physics.Vector2D{X: 0, Y: 0})
	if e.Position != (physics.Vector2D{X: -4, Y: -3}) {
		t.Errorf("Position after SetCenter = %v", e.Position)
	}
}

func TestEntity_Destroy(t *testing.T) {
	e := NewHostile("bat", physics.Vector2D{}, NewAnimation(1, NewFrame(solidImage(2, 2))), 0)
	e.Destroy()
	if e.Active() || e.Caps != 0 {
		t.Error("destroyed entity should leave every collection")
	}
}

func TestPlayerUpdate_MovesAndFaces(t *testing.T) {
	frames := map[string]*Animation{
		"down":  NewAnimation(10, NewFrame(solidImage(4, 4)), NewFrame(solidImage(4, 4))),
		"right": NewAnimation(10, NewFrame(solidImage(4, 4)), NewFrame(solidImage(4, 4))),
	}
	p := NewPlayer(physics.Vector2D{}, frames, 100, NewWeapon(0))
	p.Direction = physics.Vector2D{X: 1}

	p.Update(500*time.Millisecond, fakeWorld{})

	if p.Position.X != 50 || p.Position.Y != 0 {
		t.Errorf("Position = %v, want {50 0}", p.Position)
	}
	if p.Facing != (physics.Vector2D{X: 1}) {
		t.Errorf("Facing = %v, want {1 0}", p.Facing)
	}
	if frames["right"].Index() != 1 {
		t.Errorf("right animation index = %d, want 1", frames["right"].Index())
	}

	// standing still keeps facing and rewinds
	p.Direction = physics.Vector2D{}
	p.Update(100*time.Millisecond, fakeWorld{})
	if p.Position.X != 50 {
		t.Errorf("idle player moved to %v", p.Position)
	}
	if p.Facing != (physics.Vector2D{X: 1}) {
		t.Error("idle player lost its facing")
	}
	if frames["right"].Index() != 0 {
		t.Error("idle animation should rewind to the first frame")
	}
}

func TestPlayerUpdate_DiagonalIsNormalized(t *testing.T) {
	p := NewPlayer(physics.Vector2D{}, map[string]*Animation{"down": NewAnimation(1, NewFrame(solidImage(2, 2)))}, 100, nil)
	p.Direction = physics.Vector2D{X: 1, Y: 1}

	p.Update(time.Second, fakeWorld{})

	if d := p.Position.Length(); d < 99.999 || d > 100.001 {
		t.Errorf("diagonal distance = %v, want 100", d)
	}
}

func TestPlayerUpdate_UsesWorldCollision(t *testing.T) {
	p := NewPlayer(physics.Vector2D{X: 100, Y: 100}, map[string]*Animation{"down": NewAnimation(1, NewFrame(solidImage(16, 16)))}, 300, nil)
	p.Direction = physics.Vector2D{X: 1}
	world := fakeWorld{obstacles: []physics.Rect{{X: 120, Y: 100, Width: 20, Height: 20}}}

	p.Update(100*time.Millisecond, world)

	if p.Position.X != 104 {
		t.Errorf("Position.X = %v, want 104", p.Position.X)
	}
}

func TestHostileUpdate_PursuesTarget(t *testing.T) {
	anim := NewAnimation(5, NewFrame(solidImage(2, 2)), NewFrame(solidImage(2, 2)))
	h := NewHostile("blob", physics.Vector2D{X: -1, Y: -1}, anim, 10)

	h.Update(time.Second, fakeWorld{target: physics.Vector2D{X: 100, Y: 0}})

	if h.Center() != (physics.Vector2D{X: 10, Y: 0}) {
		t.Errorf("Center() = %v, want {10 0}", h.Center())
	}
	if anim.Index() != 1 {
		t.Errorf("animation index = %d, want 1", anim.Index())
	}
}

func TestProjectileUpdate_MovesAndExpires(t *testing.T) {
	p := NewProjectile(physics.Vector2D{X: 0, Y: 0}, NewFrame(solidImage(2, 2)), physics.Vector2D{X: 100}, 300*time.Millisecond)

	p.Update(200*time.Millisecond, fakeWorld{})
	if p.Center() != (physics.Vector2D{X: 20, Y: 0}) {
		t.Errorf("Center() = %v, want {20 0}", p.Center())
	}
	if !p.Active() {
		t.Fatal("projectile expired early")
	}

	p.Update(100*time.Millisecond, fakeWorld{})
	if p.Active() {
		t.Error("projectile should expire once its lifetime elapses")
	}
}

func TestProjectileIgnoresObstacles(t *testing.T) {
	p := NewProjectile(physics.Vector2D{}, NewFrame(solidImage(2, 2)), physics.Vector2D{X: 100}, 0)
	world := fakeWorld{obstacles: []physics.Rect{{X: 5, Y: -5, Width: 10, Height: 10}}}

	p.Update(500*time.Millisecond, world)

	if p.Center().X != 50 {
		t.Errorf("projectile should pass through obstacles, center = %v", p.Center())
	}
}

func TestFacingName(t *testing.T) {
	tests := []struct {
		facing   physics.Vector2D
		expected string
	}{
		{physics.Vector2D{X: 1}, "right"},
		{physics.Vector2D{X: -1}, "left"},
		{physics.Vector2D{Y: -1}, "up"},
		{physics.Vector2D{Y: 1}, "down"},
		{physics.Vector2D{X: 1, Y: -1}, "up"},
		{physics.Vector2D{}, "down"},
	}
	for _, tt := range tests {
		if got := FacingName(tt.facing); got != tt.expected {
			t.Errorf("FacingName(%v) = %q, expected %q", tt.facing, got, tt.expected)
		}
	}
}

func TestAnimation(t *testing.T) {
	a := NewAnimation(4, Frame{Width: 1}, Frame{Width: 2}, Frame{Width: 3})

	a.Advance(500 * time.Millisecond) // 2 frames
	if a.Index() != 2 {
		t.Errorf("Index() = %d, want 2", a.Index())
	}
	a.Advance(500 * time.Millisecond) // wraps to 4 mod 3
	if a.Index() != 1 || a.Current().Width != 2 {
		t.Errorf("Index() = %d, want 1", a.Index())
	}

	empty := NewAnimation(4)
	empty.Advance(time.Second)
	if empty.Current() != (Frame{}) {
		t.Error("empty animation should yield a zero frame")
	}
}
