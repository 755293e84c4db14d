package obj

import (
	"math"

	"github.com/milk9111/dreamless/common"
)

// Mover holds the last two committed positions of a moving object so it
// can be drawn between ticks.
type Mover struct {
	pos0, pos1 common.FVec
}

// NewMover returns a mover resting at pos.
func NewMover(pos common.IVec) Mover {
	p := pos.FVec()
	return Mover{pos0: p, pos1: p}
}

// Update commits a new position.
func (m *Mover) Update(pos common.FVec) {
	m.pos0 = m.pos1
	m.pos1 = pos
}

// Pos returns the current position.
func (m *Mover) Pos() common.FVec { return m.pos1 }

// LastPos returns the position at the previous tick.
func (m *Mover) LastPos() common.FVec { return m.pos0 }

// DrawPos returns the position delta milliseconds after the current tick.
func (m *Mover) DrawPos(delta int) common.IVec {
	return common.Interp(m.pos0, m.pos1, delta)
}

// WalkerStats configures how a walker moves. Speeds are in pixels per
// second, accelerations in pixels per second squared and JumpTime in ticks.
type WalkerStats struct {
	AccelGround float32 `yaml:"accel_ground"`
	SpeedGround float32 `yaml:"speed_ground"`
	AccelAir    float32 `yaml:"accel_air"`
	SpeedAir    float32 `yaml:"speed_air"`

	JumpTime    int     `yaml:"jump_time"`
	JumpAccel   float32 `yaml:"jump_accel"`
	JumpSpeed   float32 `yaml:"jump_speed"`
	JumpGravity float32 `yaml:"jump_gravity"`
	JumpDouble  bool    `yaml:"jump_double"`

	// StepTime is the time between footsteps at full ground speed, in
	// seconds.
	StepTime float32 `yaml:"step_time"`
}

// StepDistance is the horizontal distance walked between footsteps.
func (s WalkerStats) StepDistance() float32 {
	return s.SpeedGround * s.StepTime
}

// WalkerFlags reports events from a walker update.
type WalkerFlags uint

const (
	// FlagBlocked is set when a wall stopped horizontal movement.
	FlagBlocked WalkerFlags = 1 << iota
	// FlagJumped is set when a jump started.
	FlagJumped
	// FlagDouble is set when the jump started was a double jump.
	FlagDouble
	// FlagAirborne is set when the walker ends the tick off the ground.
	FlagAirborne
	// FlagFootstep is set when a footstep should sound.
	FlagFootstep
)

type walkState int

const (
	walkStateWalk walkState = iota
	walkStateAir
	walkStateDouble
)

const walkerSteps = 8

var (
	probeWallLow  = common.FVec{X: 8, Y: -10}
	probeWallHigh = common.FVec{X: 8, Y: 10}
	probeHead     = common.FVec{X: 0, Y: 14}
	probeFeet     = common.FVec{X: 0, Y: -14}
)

// Walker moves a Mover through a level by walking and jumping.
type Walker struct {
	state    walkState
	jumpTime int
	stepDist float32
}

// NewWalker returns a walker that starts in the air.
func NewWalker() Walker {
	return Walker{state: walkStateAir, jumpTime: -1}
}

// Airborne reports whether the walker is off the ground.
func (w *Walker) Airborne() bool {
	return w.state != walkStateWalk
}

// Update advances the mover by one tick. drive.X steers in [-1,1] and
// drive.Y >= 0.5 holds the jump button.
func (w *Walker) Update(stats *WalkerStats, level *Level, m *Mover, drive common.FVec) WalkerFlags {
	var flags WalkerFlags
	dt, invdt := common.Dt(), common.InvDt()
	pos := m.Pos()
	vel := pos.Sub(m.LastPos()).Scale(invdt)
	var accel common.FVec

	maxSpeed, maxAccel := stats.SpeedAir, stats.AccelAir
	if w.state == walkStateWalk {
		maxSpeed, maxAccel = stats.SpeedGround, stats.AccelGround
	}
	accel.X = (maxSpeed*drive.X - vel.X) * invdt
	if accel.X > maxAccel {
		accel.X = maxAccel
	} else if accel.X < -maxAccel {
		accel.X = -maxAccel
	}

	if drive.Y >= 0.5 {
		canJump := w.jumpTime < 0 &&
			(w.state == walkStateWalk || (w.state == walkStateAir && stats.JumpDouble))
		if w.jumpTime > 0 {
			w.jumpTime--
			accel.Y += stats.JumpAccel * drive.Y
		} else if canJump {
			flags |= FlagJumped
			if w.state == walkStateWalk {
				w.state = walkStateAir
			} else {
				w.state = walkStateDouble
				flags |= FlagDouble
			}
			w.jumpTime = stats.JumpTime
			if dv := stats.JumpSpeed - vel.Y; dv > 0 {
				accel.Y += dv * invdt
			}
		}
	} else {
		w.jumpTime = -1
	}
	if w.state != walkStateWalk {
		accel.Y += -stats.JumpGravity
	}

	vel = vel.Add(accel.Scale(dt))
	newPos := pos.Add(vel.Scale(dt))

	if vel.X != 0 {
		low, high := probeWallLow, probeWallHigh
		if vel.X < 0 {
			low.X, high.X = -low.X, -high.X
		}
		scale := walkerSteps
		for level.HitTest(newPos.Add(low)) || level.HitTest(newPos.Add(high)) {
			flags |= FlagBlocked
			scale--
			if scale == 0 {
				newPos.X = pos.X
				break
			}
			frac := float32(scale) * (1.0 / walkerSteps)
			newPos.X = pos.X + vel.X*(frac*dt)
		}
	}

	if vel.Y > 0 {
		scale := walkerSteps
		for level.HitTest(newPos.Add(probeHead)) {
			scale--
			if scale == 0 {
				newPos.Y = pos.Y
				break
			}
			frac := float32(scale) * (1.0 / walkerSteps)
			newPos.Y = pos.Y + vel.Y*(frac*dt)
		}
	}

	floor := level.FindFloor(newPos.Add(probeFeet)) - probeFeet.Y
	if w.state == walkStateWalk {
		delta := floor - pos.Y
		slope := delta / (newPos.X - pos.X)
		if abs32(slope) < 1.1 || abs32(delta) < 4 {
			newPos.Y = floor
		} else if delta < 0 {
			w.state = walkStateAir
		} else {
			newPos = pos
		}
	} else if newPos.Y <= floor {
		w.jumpTime = 0
		w.state = walkStateWalk
		newPos.Y = floor
	}

	if w.state == walkStateWalk {
		w.stepDist += abs32(newPos.X - pos.X)
		if step := stats.StepDistance(); step > 0 && w.stepDist >= step {
			w.stepDist = 0
			flags |= FlagFootstep
		}
	} else {
		flags |= FlagAirborne
	}

	m.Update(newPos)
	return flags
}

func abs32(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
