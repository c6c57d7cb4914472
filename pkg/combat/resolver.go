// Package combat resolves projectile hits and contact between the player and
// hostiles.
package combat

import (
	"context"

	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/event"
	"github.com/opd-ai/go-vampires/pkg/logging"
	"github.com/opd-ai/go-vampires/pkg/physics"
)

// Result summarises one resolution pass.
type Result struct {
	Hits         int
	PlayerCaught bool
	CaughtBy     entity.ID
}

// Resolver runs mask-level hit tests once per frame.
type Resolver struct {
	bus    *event.Bus
	logger *logging.Logger
}

// NewResolver creates a Resolver that announces impacts on bus.
func NewResolver(bus *event.Bus, logger *logging.Logger) *Resolver {
	return &Resolver{bus: bus, logger: logger}
}

// Collide reports whether two entities touch. Bounding rectangles are checked
// first; the opacity masks decide.
func Collide(a, b *entity.Entity) bool {
	if !a.Rect().Overlaps(b.Rect()) {
		return false
	}
	return physics.MasksOverlap(a.Frame.Mask, a.Position, b.Frame.Mask, b.Position)
}

// Resolve tests every active projectile against every active hostile, then
// the player against the surviving hostiles. A projectile is spent on its
// first hit. Contact with the player only reports the loss; nothing is
// destroyed.
func (r *Resolver) Resolve(ctx context.Context, store *entity.Store, player *entity.Entity) Result {
	var res Result
	hostiles := store.Query(entity.CapActive | entity.CapHostile)

	for _, p := range store.Query(entity.CapActive | entity.CapProjectile) {
		for _, h := range hostiles {
			if !h.Active() || !Collide(p, h) {
				continue
			}
			projectileID, hostileID := p.ID, h.ID
			h.Destroy()
			p.Destroy()
			res.Hits++
			r.bus.Publish(event.NewImpactEvent(r, uint64(projectileID), uint64(hostileID)))
			r.logger.Debug(ctx, "Hostile destroyed",
				"projectile_id", projectileID,
				"hostile_id", hostileID,
				"variant", h.Variant,
			)
			break
		}
	}

	if player == nil || !player.Active() {
		return res
	}
	for _, h := range hostiles {
		if !h.Active() || !Collide(player, h) {
			continue
		}
		res.PlayerCaught = true
		res.CaughtBy = h.ID
		c := player.Center()
		r.bus.Publish(event.NewEntityEvent(event.PlayerCaught, r, uint64(h.ID), h.Variant, c.X, c.Y))
		r.logger.Info(ctx, "Player caught", "hostile_id", h.ID, "variant", h.Variant)
		break
	}

	return res
}
