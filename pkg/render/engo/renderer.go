// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/physics"
)

// spriteSystem is the part of common.RenderSystem the canvas drives.
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// SpriteCanvas implements render.Canvas on top of the engo render system.
// Each simulation entity owns one engo entity for as long as it is drawn;
// z-indices follow draw order so engo stacks sprites the way they were drawn.
type SpriteCanvas struct {
	system  spriteSystem
	sprites map[entity.ID]*sprite
	z       float32
}

// NewSpriteCanvas creates a canvas that registers sprites with system.
func NewSpriteCanvas(system spriteSystem) *SpriteCanvas {
	return &SpriteCanvas{
		system:  system,
		sprites: make(map[entity.ID]*sprite),
	}
}

// Clear implements render.Canvas
func (c *SpriteCanvas) Clear() {
	for _, sp := range c.sprites {
		sp.seen = false
	}
	c.z = 0
}

// Draw implements render.Canvas. Entities whose frame has no engo drawable
// are skipped.
func (c *SpriteCanvas) Draw(e *entity.Entity, screen physics.Vector2D) {
	drawable, ok := e.Frame.Visual.(common.Drawable)
	if !ok || drawable == nil {
		return
	}

	sp, exists := c.sprites[e.ID]
	if !exists {
		sp = &sprite{BasicEntity: ecs.NewBasic()}
		sp.RenderComponent = common.RenderComponent{
			Drawable: drawable,
			Color:    color.RGBA{255, 255, 255, 255},
		}
		c.system.Add(&sp.BasicEntity, &sp.RenderComponent, &sp.SpaceComponent)
		c.sprites[e.ID] = sp
	}

	origin := rotatedOrigin(screen, e.Frame.Width, e.Frame.Height, e.Rotation)
	sp.Drawable = drawable
	sp.Position = engo.Point{X: float32(origin.X), Y: float32(origin.Y)}
	sp.Width = float32(e.Frame.Width)
	sp.Height = float32(e.Frame.Height)
	sp.Rotation = float32(e.Rotation * 180 / math.Pi)
	sp.SetZIndex(c.z)
	c.z++
	sp.seen = true
}

// rotatedOrigin returns where to place the top-left corner of a w by h
// sprite so that, rotated by angle radians about that corner as engo does,
// its center stays where the unrotated rectangle at topLeft has it.
func rotatedOrigin(topLeft physics.Vector2D, w, h, angle float64) physics.Vector2D {
	if angle == 0 {
		return topLeft
	}
	hw, hh := w/2, h/2
	sin, cos := math.Sincos(angle)
	center := physics.Vector2D{X: topLeft.X + hw, Y: topLeft.Y + hh}
	return physics.Vector2D{
		X: center.X - (cos*hw - sin*hh),
		Y: center.Y - (sin*hw + cos*hh),
	}
}

// Present implements render.Canvas. Sprites not drawn this frame belong to
// destroyed entities and are removed from the render system.
func (c *SpriteCanvas) Present() {
	for id, sp := range c.sprites {
		if sp.seen {
			continue
		}
		c.system.Remove(sp.BasicEntity)
		delete(c.sprites, id)
	}
}

// Sprites returns the number of engo entities currently owned.
func (c *SpriteCanvas) Sprites() int {
	return len(c.sprites)
}
