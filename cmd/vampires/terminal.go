// cmd/vampires/terminal.go
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-vampires/pkg/config"
	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/event"
	"github.com/opd-ai/go-vampires/pkg/level"
	"github.com/opd-ai/go-vampires/pkg/logging"
	"github.com/opd-ai/go-vampires/pkg/render"
	"github.com/opd-ai/go-vampires/pkg/session"
)

const (
	arenaTile   = 64
	framePeriod = 16 * time.Millisecond // ~60 FPS
)

// summary describes how a finished session ended.
func summary(s *session.Session) string {
	elapsed := s.Elapsed.Round(time.Second / 10)
	if s.Reason == session.ReasonCaught {
		return fmt.Sprintf("Caught after %s.", elapsed)
	}
	return fmt.Sprintf("Quit after %s.", elapsed)
}

// runTerminal plays a session in the terminal on a generated arena.
func runTerminal(ctx context.Context, cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger) (*session.Session, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	canvas := render.NewTerminalCanvas(screen, cfg.Terminal.Scale)
	w, h := canvas.Viewport()
	cols := int(w/arenaTile) * 2
	rows := int(h/arenaTile) * 2
	lvl := level.Arena(cols, rows, arenaTile, rand.New(rand.NewPCG(cfg.Spawner.Seed, 1)))

	s, err := session.New(ctx, cfg, lvl, boxAssets(cfg.Assets.Variants), canvas, bus, logger)
	if err != nil {
		return nil, err
	}
	s.Compositor.Resize(w, h)
	s.Start()
	defer s.Stop()

	keys := render.NewKeyState(render.HoldWindow)
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen.PollEvent, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				keys.Handle(ev, time.Now())
			case *tcell.EventResize:
				screen.Sync()
				s.Compositor.Resize(canvas.Viewport())
			}

		case now := <-ticker.C:
			if s.Frame(now, keys.Snapshot(now)) == session.StatusEnded {
				return s, nil
			}
			canvas.DrawText(0, 0, fmt.Sprintf(" %s  hostiles %d  WASD move  SPACE fire  ESC quit ",
				s.Elapsed.Round(time.Second), s.Store.Count(entity.CapActive|entity.CapHostile)))
			screen.Show()
		}
	}
}

// pumpEvents forwards polled events to out until poll returns nil or done is
// closed.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// boxAssets gives every entity a fully solid rectangular frame. The terminal
// draws by entity kind, so frames only need a size and a mask.
func boxAssets(variants []string) session.Assets {
	player := entity.NewAnimation(0, entity.BoxFrame(48, 48))
	assets := session.Assets{
		PlayerAnimations: map[string]*entity.Animation{
			"up": player, "down": player, "left": player, "right": player,
		},
		Variants:   make(map[string][]entity.Frame, len(variants)),
		Projectile: entity.BoxFrame(12, 12),
	}
	for _, v := range variants {
		assets.Variants[v] = []entity.Frame{entity.BoxFrame(40, 40)}
	}
	return assets
}
