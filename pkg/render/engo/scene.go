// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-vampires/pkg/config"
	"github.com/opd-ai/go-vampires/pkg/event"
	"github.com/opd-ai/go-vampires/pkg/level"
	"github.com/opd-ai/go-vampires/pkg/logging"
	"github.com/opd-ai/go-vampires/pkg/session"
)

// Background is the clear colour behind the map.
var Background = color.RGBA{0x3a, 0x2e, 0x3f, 0xff}

// GameScene hosts one session in an engo window.
type GameScene struct {
	ctx      context.Context
	config   *config.GameConfig
	eventBus *event.Bus
	logger   *logging.Logger
	// arena replaces the map file with a generated level.
	arena bool

	session *session.Session
	err     error
}

// NewGameScene creates a scene for cfg. With arena set the map file is not
// read and a generated level is used instead.
func NewGameScene(ctx context.Context, cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger, arena bool) *GameScene {
	return &GameScene{
		ctx:      ctx,
		config:   cfg,
		eventBus: bus,
		logger:   logger,
		arena:    arena,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "VampiresScene"
}

// Preload is called before the scene starts (required by Engo). The map is
// loaded in Setup so a failure can stop the engine cleanly.
func (scene *GameScene) Preload() {}

// Setup builds the level and session and adds the systems that drive them
// (required by Engo). Load failures stop the engine; Err reports them.
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.fail(fmt.Errorf("unexpected updater %T", u))
		return
	}

	common.SetBackground(Background)
	SetupInputBindings()

	am := NewAssetManager(scene.config.Assets.Root, scene.config.Assets.Variants, scene.config.Hostile.AnimationFPS, scene.logger)
	assets, err := am.Load()
	if err != nil {
		scene.fail(err)
		return
	}

	lvl, err := scene.level(am)
	if err != nil {
		scene.fail(err)
		return
	}

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.session, err = session.New(scene.ctx, scene.config, lvl, assets, NewSpriteCanvas(renderSystem), scene.eventBus, scene.logger)
	if err != nil {
		scene.fail(err)
		return
	}
	world.AddSystem(&SessionSystem{session: scene.session})
	scene.session.Start()
}

func (scene *GameScene) level(am *AssetManager) (*level.Level, error) {
	if !scene.arena {
		return LoadTMX(scene.config.Assets.Map)
	}
	cols := scene.config.Viewport.Width/int(arenaTile) + 8
	rows := scene.config.Viewport.Height/int(arenaTile) + 8
	lvl := level.Arena(cols, rows, arenaTile, rand.New(rand.NewPCG(scene.config.Spawner.Seed, 0)))
	am.Skin(lvl)
	return lvl, nil
}

const arenaTile = 64

func (scene *GameScene) fail(err error) {
	scene.err = err
	scene.logger.Error(scene.ctx, "Scene setup failed", err)
	engo.Exit()
}

// Exit ends the session when the window closes.
func (scene *GameScene) Exit() {
	if scene.session != nil {
		scene.session.Stop()
	}
}

// Session returns the running session, or nil before Setup.
func (scene *GameScene) Session() *session.Session {
	return scene.session
}

// Err returns the setup failure, if any.
func (scene *GameScene) Err() error {
	return scene.err
}

// SessionPriority runs the session step ahead of the render system, so each
// frame draws the positions of the step just taken.
const SessionPriority = common.RenderSystemPriority + 1000

// SessionSystem steps the session once per engo update.
type SessionSystem struct {
	session *session.Session
}

// Priority implements ecs.Prioritizer
func (s *SessionSystem) Priority() int {
	return SessionPriority
}

// Update advances the session by dt seconds and closes the window once the
// session has ended.
func (s *SessionSystem) Update(dt float32) {
	if !s.session.Running() {
		return
	}
	step := time.Duration(float64(dt) * float64(time.Second))
	if s.session.Step(step, pollInput()) == session.StatusEnded {
		engo.Exit()
	}
}

// Remove satisfies the ecs.System interface
func (s *SessionSystem) Remove(ecs.BasicEntity) {}
