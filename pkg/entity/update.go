package entity

import (
	"time"

	"github.com/opd-ai/go-vampires/pkg/physics"
)

// World is what entities need from their surroundings while updating.
type World interface {
	// Move resolves a displacement against static obstacles and returns the
	// corrected top-left position.
	Move(rect physics.Rect, delta physics.Vector2D) physics.Vector2D
	// Target returns the point hostiles pursue.
	Target() physics.Vector2D
}

// Update advances the entity by dt, dispatching on its Kind.
func (e *Entity) Update(dt time.Duration, world World) {
	if !e.Active() {
		return
	}
	switch e.Kind {
	case Player:
		e.updatePlayer(dt, world)
	case Hostile:
		e.updateHostile(dt, world)
	case Projectile:
		e.updateProjectile(dt)
	}
}

func (e *Entity) updatePlayer(dt time.Duration, world World) {
	moving := !e.Direction.IsZero()
	if moving {
		dir := e.Direction.Normalize()
		e.Facing = dir
		e.Position = world.Move(e.Rect(), dir.Scale(e.Speed*dt.Seconds()))
	}

	anim := e.playerAnimation()
	if anim == nil {
		return
	}
	if moving {
		anim.Advance(dt)
	} else {
		anim.Rewind()
	}
	e.Frame = anim.Current()
}

func (e *Entity) updateHostile(dt time.Duration, world World) {
	dir := world.Target().Sub(e.Center()).Normalize()
	e.Position = world.Move(e.Rect(), dir.Scale(e.Speed*dt.Seconds()))

	if e.Animation != nil {
		e.Animation.Advance(dt)
		e.Frame = e.Animation.Current()
	}
}

func (e *Entity) updateProjectile(dt time.Duration) {
	e.Position = e.Position.Add(e.Velocity.Scale(dt.Seconds()))
	if e.Lifetime != nil && e.Lifetime.Advance(dt) {
		e.Destroy()
	}
}

// FacingName maps a facing vector to the animation set drawn for it.
// Vertical movement wins over horizontal, so diagonals show up or down.
func FacingName(facing physics.Vector2D) string {
	name := "down"
	if facing.X > 0 {
		name = "right"
	} else if facing.X < 0 {
		name = "left"
	}
	if facing.Y > 0 {
		name = "down"
	} else if facing.Y < 0 {
		name = "up"
	}
	return name
}

func (e *Entity) playerAnimation() *Animation {
	if anim, ok := e.Animations[FacingName(e.Facing)]; ok {
		return anim
	}
	return e.Animations["down"]
}
