package obj

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/dreamless/common"
)

// cameraHistory is the length of the camera's smoothing window in ticks.
const cameraHistory = 32

// Camera follows a target through a level, smoothing its motion with a
// triangular filter over the last cameraHistory targets.
type Camera struct {
	bounds common.IRect
	fov    common.IRect
	// clamp is the range of centers that keep the view inside bounds.
	clamp    cp.BB
	target   cp.Vector
	override bool
	history  []cp.Vector

	pos0, pos1 common.FVec
}

// SetBounds sets the area the view must stay inside.
func (c *Camera) SetBounds(bounds common.IRect) {
	c.bounds = bounds
	c.calculateClamp()
}

// SetFOV sets the size of the view.
func (c *Camera) SetFOV(size common.IVec) {
	c.fov.X0 = -(size.X >> 1)
	c.fov.X1 = c.fov.X0 + size.X
	c.fov.Y0 = -(size.Y >> 1)
	c.fov.Y1 = c.fov.Y0 + size.Y
	c.calculateClamp()
}

// SetTarget sets the point the camera should center on. The target is
// clamped so the view stays inside the bounds. An override target is
// followed immediately, without smoothing.
func (c *Camera) SetTarget(target common.FVec, override bool) {
	c.target = c.clamp.ClampVect(&cp.Vector{X: float64(target.X), Y: float64(target.Y)})
	c.override = override
}

// Target returns the clamped target.
func (c *Camera) Target() common.FVec {
	return common.FVec{X: float32(c.target.X), Y: float32(c.target.Y)}
}

// Update advances the camera by one tick.
func (c *Camera) Update() {
	if len(c.history) != cameraHistory {
		c.history = make([]cp.Vector, cameraHistory)
		c.fillHistory()
		c.pos0 = c.Target()
		c.pos1 = c.pos0
		return
	}
	if c.override {
		c.fillHistory()
		c.pos0 = c.pos1
		c.pos1 = c.Target()
		return
	}

	copy(c.history[1:], c.history[:cameraHistory-1])
	c.history[0] = c.target

	var acc cp.Vector
	var accw float64
	for i, h := range c.history {
		weight := float64(max(i+1, cameraHistory-i))
		acc = acc.Add(h.Mult(weight))
		accw += weight
	}
	c.pos0 = c.pos1
	c.pos1 = common.FVec{X: float32(acc.X / accw), Y: float32(acc.Y / accw)}
}

func (c *Camera) fillHistory() {
	for i := range c.history {
		c.history[i] = c.target
	}
}

// DrawPos returns the lower left corner of the view delta milliseconds
// after the current tick.
func (c *Camera) DrawPos(delta int) common.IVec {
	return common.Interp(c.pos0, c.pos1, delta).Add(common.IVec{X: c.fov.X0, Y: c.fov.Y0})
}

// Center returns the current center of the view.
func (c *Camera) Center() common.FVec {
	return c.pos1
}

func (c *Camera) calculateClamp() {
	if c.bounds.Width() <= c.fov.Width() {
		mid := float64((c.bounds.X0 + c.bounds.X1) >> 1)
		c.clamp.L, c.clamp.R = mid, mid
	} else {
		c.clamp.L = float64(c.bounds.X0 - c.fov.X0)
		c.clamp.R = float64(c.bounds.X1 - c.fov.X1)
	}
	if c.bounds.Height() <= c.fov.Height() {
		mid := float64((c.bounds.Y0 + c.bounds.Y1) >> 1)
		c.clamp.B, c.clamp.T = mid, mid
	} else {
		c.clamp.B = float64(c.bounds.Y0 - c.fov.Y0)
		c.clamp.T = float64(c.bounds.Y1 - c.fov.Y1)
	}
}
