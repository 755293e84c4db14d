package common

import "log"

// Clock converts wall time in milliseconds into a whole number of fixed ticks.
// The remainder is left for render interpolation.
type Clock struct {
	started   bool
	frameTime uint32
}

// Advance returns how many ticks to run for the given timestamp.
// The first call runs one tick. A gap longer than MaxUpdate runs exactly one
// tick and drops the rest instead of trying to catch up.
func (c *Clock) Advance(time uint32) int {
	if !c.started {
		c.started = true
		c.frameTime = time
		return 1
	}
	delta := time - c.frameTime
	if delta > MaxUpdate {
		log.Printf("lag: %dms behind", delta)
		c.frameTime = time
		return 1
	}
	n := delta / FrameTime
	c.frameTime += n * FrameTime
	return int(n)
}

// Reset forgets the last tick so the next Advance starts over with one
// tick, for resuming after a pause.
func (c *Clock) Reset() {
	c.started = false
}

// FrameTime returns the timestamp of the most recent tick.
func (c *Clock) FrameTime() uint32 {
	return c.frameTime
}

// TickTime returns the timestamp of tick i out of n ticks returned by Advance.
func (c *Clock) TickTime(i, n int) uint32 {
	return c.frameTime - uint32(n-1-i)*FrameTime
}

// Delta returns the milliseconds elapsed since the last tick, clamped to
// one frame so interpolation never extrapolates.
func (c *Clock) Delta(time uint32) int {
	d := int(time - c.frameTime)
	if d < 0 {
		return 0
	}
	if d > FrameTime {
		return FrameTime
	}
	return d
}
