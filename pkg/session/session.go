// pkg/session/session.go
package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/opd-ai/go-vampires/pkg/combat"
	"github.com/opd-ai/go-vampires/pkg/config"
	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/event"
	"github.com/opd-ai/go-vampires/pkg/input"
	"github.com/opd-ai/go-vampires/pkg/level"
	"github.com/opd-ai/go-vampires/pkg/logging"
	"github.com/opd-ai/go-vampires/pkg/physics"
	"github.com/opd-ai/go-vampires/pkg/render"
	"github.com/opd-ai/go-vampires/pkg/spawn"
)

// Status is the session state. Running is the only state frames are
// processed in; Ended is final.
type Status int

const (
	StatusRunning Status = iota
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Reasons a session ends.
const (
	ReasonQuit   = "quit"
	ReasonCaught = "caught"
)

// Assets are the frames a frontend decoded for the session.
type Assets struct {
	PlayerAnimations map[string]*entity.Animation
	Variants         map[string][]entity.Frame
	Projectile       entity.Frame
}

// Session owns every entity and collaborator of one run and advances them
// one frame at a time. It is not safe for concurrent use; frontends call it
// from their single update loop.
type Session struct {
	Config     *config.GameConfig
	Store      *entity.Store
	Player     *entity.Entity
	Collider   *physics.Collider
	Spawner    *spawn.Spawner
	Combat     *combat.Resolver
	Compositor *render.Compositor
	Canvas     render.Canvas
	EventBus   *event.Bus

	Status  Status
	Reason  string
	Frames  uint64
	Elapsed time.Duration

	projectile entity.Frame
	ctx        context.Context
	logger     *logging.Logger
	started    bool
	tornDown   bool
	lastFrame  time.Time
}

// New populates a session from a level. canvas may be nil for headless runs.
func New(ctx context.Context, cfg *config.GameConfig, lvl *level.Level, assets Assets, canvas render.Canvas, bus *event.Bus, logger *logging.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	if logging.GetSessionID(ctx) == "" {
		ctx = logging.WithSessionID(ctx, logging.GenerateSessionID())
	}

	store := entity.NewStore()
	weapon := entity.NewWeapon(cfg.Weapon.Cooldown())
	player := entity.NewPlayer(physics.Vector2D{}, assets.PlayerAnimations, cfg.Player.Speed, weapon)

	built, err := lvl.Populate(store, player)
	if err != nil {
		return nil, fmt.Errorf("failed to populate level: %w", err)
	}

	s := &Session{
		Config:     cfg,
		Store:      store,
		Player:     built.Player,
		Collider:   physics.NewCollider(built.Obstacles),
		Combat:     combat.NewResolver(bus, logger),
		Compositor: render.NewCompositor(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height)),
		Canvas:     canvas,
		EventBus:   bus,
		Status:     StatusRunning,
		projectile: assets.Projectile,
		ctx:        ctx,
		logger:     logger,
	}
	s.Spawner = spawn.New(spawn.Options{
		Interval:     cfg.Spawner.Interval(),
		Points:       built.SpawnPoints,
		Variants:     assets.Variants,
		HostileSpeed: cfg.Hostile.Speed,
		AnimationFPS: cfg.Hostile.AnimationFPS,
		MaxHostiles:  cfg.Spawner.MaxHostiles,
	}, store, bus, newRand(cfg.Spawner.Seed), logger)

	logger.Info(ctx, "Session created",
		"entities", store.Len(),
		"obstacles", len(built.Obstacles),
		"spawn_points", len(built.SpawnPoints),
	)
	return s, nil
}

// newRand seeds a PCG source; a zero seed picks a random one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Context returns the session's logging context.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Start announces the session and its ambient loop. It is a no-op after the
// first call.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.EventBus.Publish(&event.BaseEvent{EventType: event.SessionStarted, Source: s})
	s.EventBus.Publish(&event.BaseEvent{EventType: event.AmbientStart, Source: s})
	s.logger.Info(s.ctx, "Session started")
}

// Running reports whether frames are still processed.
func (s *Session) Running() bool {
	return s.Status == StatusRunning
}

// Frame reads the clock once and steps the session by the time since the
// previous call. The first call steps by zero.
func (s *Session) Frame(now time.Time, in input.Snapshot) Status {
	var dt time.Duration
	if !s.lastFrame.IsZero() {
		dt = now.Sub(s.lastFrame)
	}
	s.lastFrame = now
	return s.Step(dt, in)
}

// Step advances one frame: input, weapon cooldown and firing, spawning,
// movement, combat, the end check and finally rendering. Once the session
// has ended it does nothing.
func (s *Session) Step(dt time.Duration, in input.Snapshot) Status {
	if s.Status == StatusEnded {
		return s.Status
	}
	dt = max(dt, 0)
	s.Frames++
	s.Elapsed += dt

	if in.Quit {
		s.end(ReasonQuit)
		return s.Status
	}
	s.steer(in.Direction)

	s.updateWeapon(dt, in.Fire)
	s.Spawner.Advance(s.ctx, dt)
	s.updateEntities(dt)

	if res := s.Combat.Resolve(s.ctx, s.Store, s.Player); res.PlayerCaught {
		s.end(ReasonCaught)
		return s.Status
	}

	s.Store.Compact()
	if s.Canvas != nil {
		s.Compositor.Render(s.Canvas, s.Store, s.Player)
	}
	return s.Status
}

// steer applies the input direction to the player. The facing only changes
// while a direction is held.
func (s *Session) steer(d input.Direction) {
	s.Player.Direction = d.Vector()
	if !s.Player.Direction.IsZero() {
		s.Player.Facing = s.Player.Direction
	}
}

func (s *Session) updateWeapon(dt time.Duration, fire bool) {
	w := s.Player.Weapon
	w.Advance(dt)
	if fire && w.TryFire(s.Elapsed) {
		s.fire()
	}
}

// fire creates a projectile in front of the player along its facing.
func (s *Session) fire() {
	facing := s.Player.Facing.Normalize()
	muzzle := s.Player.Center().Add(facing.Scale(s.Config.Weapon.MuzzleOffset))
	p := entity.NewProjectile(muzzle, s.projectile, facing.Scale(s.Config.Weapon.ProjectileSpeed), s.Config.Weapon.ProjectileLifetime())
	s.Store.Add(p)

	s.EventBus.Publish(event.NewEntityEvent(event.ProjectileFired, s, uint64(p.ID), "", muzzle.X, muzzle.Y))
	s.logger.Debug(s.ctx, "Projectile fired", "id", p.ID, "x", muzzle.X, "y", muzzle.Y)
}

func (s *Session) updateEntities(dt time.Duration) {
	for _, e := range s.Store.Query(entity.CapActive) {
		e.Update(dt, s)
	}
}

// Move implements entity.World by routing movement through the collider.
func (s *Session) Move(rect physics.Rect, delta physics.Vector2D) physics.Vector2D {
	return s.Collider.Move(rect, delta)
}

// Target implements entity.World; hostiles chase the player's center.
func (s *Session) Target() physics.Vector2D {
	return s.Player.Center()
}

// end moves the session to Ended and tears it down exactly once.
func (s *Session) end(reason string) {
	if s.Status == StatusEnded {
		return
	}
	s.Status = StatusEnded
	s.Reason = reason
	s.teardown()
}

func (s *Session) teardown() {
	if s.tornDown {
		return
	}
	s.tornDown = true

	s.logger.Info(s.ctx, "Session ended",
		"reason", s.Reason,
		"frames", s.Frames,
		"elapsed", s.Elapsed.String(),
		"hostiles_spawned", s.Spawner.Spawned(),
	)
	s.EventBus.Publish(event.NewSessionEvent(event.SessionEnded, s, s.Reason, s.Frames))
	s.Store.Clear()
}

// Stop ends the session as if the player had quit.
func (s *Session) Stop() {
	s.end(ReasonQuit)
}
