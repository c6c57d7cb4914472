package render

import (
	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/physics"
)

// Compositor draws the world through a camera that keeps one point, normally
// the player's center, in the middle of the viewport.
type Compositor struct {
	width, height float64
	offset        physics.Vector2D
}

// NewCompositor creates a compositor for a viewport of the given pixel size.
func NewCompositor(width, height float64) *Compositor {
	return &Compositor{width: width, height: height}
}

// Viewport returns the viewport size in pixels.
func (c *Compositor) Viewport() (width, height float64) {
	return c.width, c.height
}

// Resize changes the viewport size.
func (c *Compositor) Resize(width, height float64) {
	c.width, c.height = width, height
}

// Focus points the camera at target and returns the resulting offset.
func (c *Compositor) Focus(target physics.Vector2D) physics.Vector2D {
	c.offset = physics.Vector2D{
		X: -target.X + c.width/2,
		Y: -target.Y + c.height/2,
	}
	return c.offset
}

// Offset returns the camera offset from the last Focus.
func (c *Compositor) Offset() physics.Vector2D {
	return c.offset
}

// ToScreen converts a world position to viewport pixels.
func (c *Compositor) ToScreen(world physics.Vector2D) physics.Vector2D {
	return world.Add(c.offset)
}

// Render focuses on the player and draws every active renderable entity in
// registration order. It returns the number of entities drawn.
func (c *Compositor) Render(canvas Canvas, store *entity.Store, player *entity.Entity) int {
	if player != nil {
		c.Focus(player.Center())
	}

	canvas.Clear()
	drawn := 0
	for _, e := range store.Query(entity.CapActive | entity.CapRenderable) {
		canvas.Draw(e, c.ToScreen(e.Position))
		drawn++
	}
	canvas.Present()
	return drawn
}
