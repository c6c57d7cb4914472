// Package spawn emits hostile entities on a repeating timer.
package spawn

import (
	"context"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/event"
	"github.com/opd-ai/go-vampires/pkg/logging"
	"github.com/opd-ai/go-vampires/pkg/physics"
	"github.com/opd-ai/go-vampires/pkg/timer"
)

// Options configures a Spawner.
type Options struct {
	Interval     time.Duration
	Points       []physics.Vector2D
	Variants     map[string][]entity.Frame
	HostileSpeed float64
	AnimationFPS float64
	// MaxHostiles caps concurrently active hostiles. Zero leaves the count
	// unbounded.
	MaxHostiles int
}

type variant struct {
	name   string
	frames []entity.Frame
}

// Spawner picks a spawn point and a variant uniformly at random, with
// replacement, each time its interval elapses.
type Spawner struct {
	opts     Options
	variants []variant
	timer    *timer.Timer
	rng      *rand.Rand
	store    *entity.Store
	bus      *event.Bus
	logger   *logging.Logger

	warnedEmpty bool
	spawned     uint64
}

// New creates a Spawner that registers hostiles in store and announces them
// on bus. Variants are ordered by name so a seeded rng gives repeatable picks.
func New(opts Options, store *entity.Store, bus *event.Bus, rng *rand.Rand, logger *logging.Logger) *Spawner {
	names := make([]string, 0, len(opts.Variants))
	for name := range opts.Variants {
		names = append(names, name)
	}
	sort.Strings(names)

	variants := make([]variant, 0, len(names))
	for _, name := range names {
		if len(opts.Variants[name]) == 0 {
			continue
		}
		variants = append(variants, variant{name: name, frames: opts.Variants[name]})
	}

	return &Spawner{
		opts:     opts,
		variants: variants,
		timer:    timer.NewRepeating(opts.Interval),
		rng:      rng,
		store:    store,
		bus:      bus,
		logger:   logger,
	}
}

// Advance runs the spawn timer by dt and spawns at most one hostile when it
// fires. It returns the new hostile, or nil.
func (s *Spawner) Advance(ctx context.Context, dt time.Duration) *entity.Entity {
	if !s.timer.Advance(dt) {
		return nil
	}
	return s.Spawn(ctx)
}

// Spawn creates one hostile immediately. With no spawn points or no variants
// it does nothing; the session keeps running without new hostiles.
func (s *Spawner) Spawn(ctx context.Context) *entity.Entity {
	if len(s.opts.Points) == 0 || len(s.variants) == 0 {
		if !s.warnedEmpty {
			s.logger.Warn(ctx, "Spawning disabled",
				"spawn_points", len(s.opts.Points),
				"variants", len(s.variants),
			)
			s.warnedEmpty = true
		}
		return nil
	}
	if s.opts.MaxHostiles > 0 && s.store.Count(entity.CapActive|entity.CapHostile) >= s.opts.MaxHostiles {
		s.logger.Debug(ctx, "Hostile cap reached", "max_hostiles", s.opts.MaxHostiles)
		return nil
	}

	point := s.opts.Points[s.rng.IntN(len(s.opts.Points))]
	v := s.variants[s.rng.IntN(len(s.variants))]

	anim := entity.NewAnimation(s.opts.AnimationFPS, v.frames...)
	hostile := entity.NewHostile(v.name, physics.Vector2D{}, anim, s.opts.HostileSpeed)
	hostile.SetCenter(point)
	s.store.Add(hostile)
	s.spawned++

	s.bus.Publish(event.NewEntityEvent(event.HostileSpawned, s, uint64(hostile.ID), v.name, point.X, point.Y))
	s.logger.Debug(ctx, "Hostile spawned", "id", hostile.ID, "variant", v.name, "x", point.X, "y", point.Y)
	return hostile
}

// Spawned returns how many hostiles this spawner has created.
func (s *Spawner) Spawned() uint64 {
	return s.spawned
}

// VariantNames returns the usable variant names in selection order.
func (s *Spawner) VariantNames() []string {
	names := make([]string, len(s.variants))
	for i, v := range s.variants {
		names[i] = v.name
	}
	return names
}
