// pkg/entity/entity.go
package entity

import (
	"time"

	"github.com/opd-ai/go-vampires/pkg/physics"
	"github.com/opd-ai/go-vampires/pkg/timer"
)

// ID is a unique identifier for an entity within one Store
type ID uint64

// Kind tags the closed set of entity variants
type Kind int

const (
	Ground Kind = iota
	Obstacle
	Player
	Hostile
	Projectile
)

func (k Kind) String() string {
	switch k {
	case Ground:
		return "ground"
	case Obstacle:
		return "obstacle"
	case Player:
		return "player"
	case Hostile:
		return "hostile"
	case Projectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Capability is a set of flags describing which collections an entity
// belongs to. Clearing CapActive destroys the entity.
type Capability uint8

const (
	CapActive Capability = 1 << iota
	CapRenderable
	CapCollidable
	CapHostile
	CapProjectile
)

// Has reports whether every flag in want is set
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Entity is the shared spatial record for every variant. Fields that only
// one variant uses are zero for the others.
type Entity struct {
	ID       ID
	Kind     Kind
	Caps     Capability
	Position physics.Vector2D // top-left corner in world pixels
	Frame    Frame

	// Player
	Speed      float64
	Direction  physics.Vector2D
	Facing     physics.Vector2D
	Animations map[string]*Animation
	Weapon     *Weapon

	// Hostile
	Variant   string
	Animation *Animation

	// Projectile
	Velocity physics.Vector2D
	Rotation float64
	Lifetime *timer.Timer
}

// Rect returns the entity's bounding rectangle, sized by its current frame
func (e *Entity) Rect() physics.Rect {
	return physics.NewRect(e.Position, e.Frame.Width, e.Frame.Height)
}

// Center returns the midpoint of the bounding rectangle
func (e *Entity) Center() physics.Vector2D {
	return e.Rect().Center()
}

// SetCenter moves the entity so its rectangle is centred on c
func (e *Entity) SetCenter(c physics.Vector2D) {
	e.Position = physics.Vector2D{X: c.X - e.Frame.Width/2, Y: c.Y - e.Frame.Height/2}
}

// Active reports whether the entity is still simulated and drawn
func (e *Entity) Active() bool {
	return e.Caps.Has(CapActive)
}

// Destroy removes the entity from every collection
func (e *Entity) Destroy() {
	e.Caps = 0
}

// NewGround creates a drawable tile with no collision
func NewGround(pos physics.Vector2D, frame Frame) *Entity {
	return &Entity{
		Kind:     Ground,
		Caps:     CapActive | CapRenderable,
		Position: pos,
		Frame:    frame,
	}
}

// NewObstacle creates static collision geometry. Invisible obstacles take
// part in collision but are never drawn.
func NewObstacle(pos physics.Vector2D, frame Frame, visible bool) *Entity {
	caps := CapActive | CapCollidable
	if visible {
		caps |= CapRenderable
	}
	return &Entity{
		Kind:     Obstacle,
		Caps:     caps,
		Position: pos,
		Frame:    frame,
	}
}

// NewPlayer creates the controlled entity. animations is keyed by facing
// name (up, down, left, right) and must contain at least "down".
func NewPlayer(pos physics.Vector2D, animations map[string]*Animation, speed float64, weapon *Weapon) *Entity {
	e := &Entity{
		Kind:       Player,
		Caps:       CapActive | CapRenderable,
		Position:   pos,
		Speed:      speed,
		Facing:     physics.Vector2D{Y: 1},
		Animations: animations,
		Weapon:     weapon,
	}
	if anim := e.playerAnimation(); anim != nil {
		e.Frame = anim.Current()
	}
	return e
}

// NewHostile creates a pursuing hostile of the given variant
func NewHostile(variant string, pos physics.Vector2D, animation *Animation, speed float64) *Entity {
	return &Entity{
		Kind:      Hostile,
		Caps:      CapActive | CapRenderable | CapHostile,
		Position:  pos,
		Frame:     animation.Current(),
		Variant:   variant,
		Animation: animation,
		Speed:     speed,
	}
}

// NewProjectile creates a projectile centred on center, flying at velocity
// until lifetime elapses. A zero lifetime means it never expires.
func NewProjectile(center physics.Vector2D, frame Frame, velocity physics.Vector2D, lifetime time.Duration) *Entity {
	e := &Entity{
		Kind:     Projectile,
		Caps:     CapActive | CapRenderable | CapProjectile,
		Frame:    frame,
		Velocity: velocity,
		Rotation: velocity.Angle(),
	}
	if lifetime > 0 {
		e.Lifetime = timer.New(lifetime)
	}
	e.SetCenter(center)
	return e
}
