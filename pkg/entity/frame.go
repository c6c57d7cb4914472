package entity

import (
	"image"
	"time"

	"github.com/opd-ai/go-vampires/pkg/physics"
)

// Frame is one visual of an entity. Visual is opaque to the simulation; each
// frontend stores whatever it draws with (an image.Image, an engo texture).
// Mask may be nil, in which case the frame never takes part in mask tests.
type Frame struct {
	Visual any
	Width  float64
	Height float64
	Mask   *physics.Mask
}

// NewFrame builds a frame from an image, deriving its mask from opacity.
func NewFrame(img image.Image) Frame {
	return NewFrameWithVisual(img, img)
}

// NewFrameWithVisual builds a frame whose size and mask come from img but
// which is drawn with visual.
func NewFrameWithVisual(visual any, img image.Image) Frame {
	b := img.Bounds()
	return Frame{
		Visual: visual,
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
		Mask:   physics.MaskFromImage(img),
	}
}

// BoxFrame builds a fully solid frame with no visual, used for invisible
// collision geometry.
func BoxFrame(width, height float64) Frame {
	return Frame{
		Width:  width,
		Height: height,
		Mask:   physics.FullMask(int(width), int(height)),
	}
}

// Animation cycles through frames at a fixed rate.
type Animation struct {
	Frames []Frame
	FPS    float64
	index  float64
}

// NewAnimation creates an animation starting at its first frame.
func NewAnimation(fps float64, frames ...Frame) *Animation {
	return &Animation{Frames: frames, FPS: fps}
}

// Advance moves the animation forward by dt.
func (a *Animation) Advance(dt time.Duration) {
	if len(a.Frames) == 0 {
		return
	}
	a.index += a.FPS * dt.Seconds()
	if n := float64(len(a.Frames)); a.index >= n {
		a.index -= n * float64(int(a.index/n))
	}
}

// Rewind returns to the first frame.
func (a *Animation) Rewind() {
	a.index = 0
}

// Index returns the current frame index.
func (a *Animation) Index() int {
	if len(a.Frames) == 0 {
		return 0
	}
	return int(a.index) % len(a.Frames)
}

// Current returns the frame to draw now.
func (a *Animation) Current() Frame {
	if len(a.Frames) == 0 {
		return Frame{}
	}
	return a.Frames[a.Index()]
}
