// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/logging"
	"github.com/opd-ai/go-vampires/pkg/physics"
)

// Canvas is a drawing surface. Positions passed to Draw are in viewport
// pixels, already shifted by the camera.
type Canvas interface {
	Clear()
	Draw(e *entity.Entity, screen physics.Vector2D)
	Present()
}

// NullCanvas is a Canvas that only logs what it is asked to draw.
type NullCanvas struct {
	logger *logging.Logger
	draws  int
}

// NewNullCanvas creates a new NullCanvas with structured logging.
func NewNullCanvas(logger *logging.Logger) *NullCanvas {
	return &NullCanvas{logger: logger}
}

// Clear implements Canvas.
func (d *NullCanvas) Clear() {
	d.draws = 0
	d.logger.Debug(context.Background(), "Clear called")
}

// Draw implements Canvas.
func (d *NullCanvas) Draw(e *entity.Entity, screen physics.Vector2D) {
	d.draws++
	d.logger.Debug(context.Background(), "Draw called",
		"entity_id", e.ID,
		"kind", e.Kind.String(),
		"x", screen.X,
		"y", screen.Y,
	)
}

// Present implements Canvas.
func (d *NullCanvas) Present() {
	d.logger.Debug(context.Background(), "Present called", "draws", d.draws)
}

// Draws returns how many entities were drawn since the last Clear.
func (d *NullCanvas) Draws() int {
	return d.draws
}
