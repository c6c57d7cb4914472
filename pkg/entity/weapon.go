// pkg/entity/weapon.go
package entity

import (
	"time"

	"github.com/opd-ai/go-vampires/pkg/timer"
)

// Weapon is the ranged attack state attached to the controlled entity.
// Ready drops to false the moment the weapon fires and comes back only after
// the cooldown has elapsed.
type Weapon struct {
	Ready     bool
	LastFired time.Duration // session time of the last shot
	cooldown  *timer.Timer
}

// NewWeapon creates a ready weapon with the given cooldown
func NewWeapon(cooldown time.Duration) *Weapon {
	return &Weapon{
		Ready:    true,
		cooldown: timer.New(cooldown),
	}
}

// Cooldown returns the minimum time between two shots
func (w *Weapon) Cooldown() time.Duration {
	return w.cooldown.Interval()
}

// Advance runs the cooldown forward by dt
func (w *Weapon) Advance(dt time.Duration) {
	if w.Ready {
		return
	}
	if w.cooldown.Advance(dt) {
		w.Ready = true
	}
}

// TryFire consumes the ready state at session time now. It reports whether
// a shot was allowed.
func (w *Weapon) TryFire(now time.Duration) bool {
	if !w.Ready {
		return false
	}
	w.Ready = false
	w.LastFired = now
	w.cooldown.Reset()
	return true
}
