package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-vampires/pkg/entity"
	"github.com/opd-ai/go-vampires/pkg/physics"
)

// Background is the clear colour shared by every frontend.
var Background = tcell.NewRGBColor(0x3a, 0x2e, 0x3f)

var (
	groundStyle     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x55, 0x4a, 0x5c)).Background(Background)
	obstacleStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(Background)
	playerStyle     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(Background).Bold(true)
	hostileStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(Background)
	projectileStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(Background)
	textStyle       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(Background)
)

// TerminalCanvas draws entities as glyphs on a tcell screen. One column covers
// scale world pixels and one row covers twice that, since cells are roughly
// twice as tall as they are wide.
type TerminalCanvas struct {
	screen tcell.Screen
	scale  float64
}

// NewTerminalCanvas creates a canvas over an initialised screen.
func NewTerminalCanvas(screen tcell.Screen, scale float64) *TerminalCanvas {
	if scale <= 0 {
		scale = 1
	}
	return &TerminalCanvas{screen: screen, scale: scale}
}

// Viewport returns the world-pixel size the screen currently covers.
func (r *TerminalCanvas) Viewport() (width, height float64) {
	w, h := r.screen.Size()
	return float64(w) * r.scale, float64(h) * r.scale * 2
}

// toCell converts viewport pixels to a cell coordinate
func (r *TerminalCanvas) toCell(p physics.Vector2D) (int, int) {
	return int(math.Floor(p.X / r.scale)), int(math.Floor(p.Y / (r.scale * 2)))
}

// Clear implements Canvas
func (r *TerminalCanvas) Clear() {
	r.screen.SetStyle(tcell.StyleDefault.Background(Background))
	r.screen.Clear()
}

// Present implements Canvas
func (r *TerminalCanvas) Present() {
	r.screen.Show()
}

// Draw implements Canvas. Ground and obstacles fill the cells under their
// rectangle; moving entities occupy the cell under their center.
func (r *TerminalCanvas) Draw(e *entity.Entity, screen physics.Vector2D) {
	switch e.Kind {
	case entity.Ground:
		r.fill(screen, e.Frame.Width, e.Frame.Height, '.', groundStyle)
	case entity.Obstacle:
		r.fill(screen, e.Frame.Width, e.Frame.Height, '#', obstacleStyle)
	case entity.Player:
		r.put(center(screen, e), '@', playerStyle)
	case entity.Hostile:
		r.put(center(screen, e), hostileGlyph(e.Variant), hostileStyle)
	case entity.Projectile:
		r.put(center(screen, e), '*', projectileStyle)
	}
}

// DrawText writes s starting at cell (x, y), clipped to the screen.
func (r *TerminalCanvas) DrawText(x, y int, s string) {
	for i, ch := range []rune(s) {
		r.setCell(x+i, y, ch, textStyle)
	}
}

func center(screen physics.Vector2D, e *entity.Entity) physics.Vector2D {
	return physics.Vector2D{X: screen.X + e.Frame.Width/2, Y: screen.Y + e.Frame.Height/2}
}

func (r *TerminalCanvas) put(p physics.Vector2D, ch rune, style tcell.Style) {
	x, y := r.toCell(p)
	r.setCell(x, y, ch, style)
}

func (r *TerminalCanvas) fill(topLeft physics.Vector2D, w, h float64, ch rune, style tcell.Style) {
	x0, y0 := r.toCell(topLeft)
	x1, y1 := r.toCell(physics.Vector2D{X: topLeft.X + w, Y: topLeft.Y + h})
	// always cover at least one cell
	x1, y1 = max(x1, x0+1), max(y1, y0+1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.setCell(x, y, ch, style)
		}
	}
}

func (r *TerminalCanvas) setCell(x, y int, ch rune, style tcell.Style) {
	w, h := r.screen.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func hostileGlyph(variant string) rune {
	switch variant {
	case "bat":
		return 'v'
	case "blob":
		return 'o'
	case "skeleton":
		return 's'
	}
	if variant == "" {
		return 'x'
	}
	return []rune(variant)[0]
}
