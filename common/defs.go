package common

import "math"

const (
	// ScreenWidth and ScreenHeight are the logical size of the world view in pixels.
	ScreenWidth  = 1280 / 2
	ScreenHeight = 720 / 2

	// FrameTime is the number of milliseconds between simulation ticks.
	FrameTime = 32

	// MaxUpdate is the largest gap in milliseconds the clock will try to catch up on.
	MaxUpdate = 500

	// TileBits is log2 of TileSize.
	TileBits = 5
	// TileSize is the edge length of a level tile in pixels.
	TileSize = 1 << TileBits
)

// Dt returns the timestep in seconds.
func Dt() float32 {
	return float32(float64(FrameTime) * 1e-3)
}

// InvDt returns the number of ticks per second.
func InvDt() float32 {
	return float32(1e3 / float64(FrameTime))
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Interp returns the draw position between two successive tick positions,
// reltime milliseconds after the later tick was committed.
func Interp(a, b FVec, reltime int) IVec {
	frac := float32(reltime) * (1.0 / FrameTime)
	return FVec{X: Lerp(a.X, b.X, frac), Y: Lerp(a.Y, b.Y, frac)}.IVec()
}

// TilePos returns the tile containing a pixel position.
func TilePos(pos FVec) IVec {
	return IVec{
		X: int(math.Floor(float64(pos.X) / TileSize)),
		Y: int(math.Floor(float64(pos.Y) / TileSize)),
	}
}

// TileRelPos returns the position relative to the lower left corner of its tile.
func TileRelPos(pos FVec) FVec {
	t := TilePos(pos)
	return FVec{
		X: pos.X - float32(t.X*TileSize),
		Y: pos.Y - float32(t.Y*TileSize),
	}
}

// TileCenter returns the pixel center of a tile.
func TileCenter(tile IVec) IVec {
	return IVec{X: tile.X*TileSize + TileSize/2, Y: tile.Y*TileSize + TileSize/2}
}
