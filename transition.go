package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/dreamless/common"
)

// fadeFrames is the length of the fade in from black after a level loads,
// in simulation ticks.
const fadeFrames = 12

// Transition fades the screen in from black after a level starts. It never
// delays the level itself.
type Transition struct {
	Frames   int
	Duration int
	overlay  *ebiten.Image
}

func NewTransition() *Transition {
	return &Transition{Frames: fadeFrames, Duration: fadeFrames}
}

// Start begins a new fade from black.
func (t *Transition) Start() {
	t.Frames = 0
}

// Active reports whether the overlay is still visible.
func (t *Transition) Active() bool {
	return t.Frames < t.Duration
}

// Update advances the fade by one tick.
func (t *Transition) Update() {
	if t.Active() {
		t.Frames++
	}
}

// Alpha returns the overlay opacity delta milliseconds after the current
// tick.
func (t *Transition) Alpha(delta int) float32 {
	if !t.Active() || t.Duration <= 0 {
		return 0
	}
	a := 1 - (float32(t.Frames)+float32(delta)/common.FrameTime)/float32(t.Duration)
	return max(0, min(1, a))
}

// Draw draws the fade overlay onto the provided screen.
func (t *Transition) Draw(screen *ebiten.Image, delta int) {
	alpha := t.Alpha(delta)
	if alpha <= 0 {
		return
	}
	if t.overlay == nil {
		t.overlay = ebiten.NewImage(1, 1)
		t.overlay.Fill(color.White)
	}

	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.Scale(0, 0, 0, alpha)
	screen.DrawImage(t.overlay, op)
}
