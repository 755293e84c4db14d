package obj

import (
	"image/color"

	"github.com/milk9111/dreamless/analytics"
	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/graphics"
	"github.com/milk9111/dreamless/sound"
)

// Renderer receives the sprites and overlay text of one frame.
type Renderer interface {
	AddSprite(sp graphics.Sprite, pos common.IVec, layer graphics.Layer, o graphics.Orientation)
	PutText(pos common.IVec, h graphics.HAlign, v graphics.VAlign, width int, c color.Color, text string)
	SetCamera(pos common.IVec)
	SetWorld(world float32)
	SetNoise(noise [4]float32)
	Clear(all bool)
}

// SoundPlayer plays sound effects. volume is in decibels and pan runs from
// -1 to 1.
type SoundPlayer interface {
	Play(time uint32, sfx sound.Sfx, volume, pan float32)
}

// AnalyticsSink receives finished level records.
type AnalyticsSink interface {
	Submit(l analytics.Level)
}

// DataSource reads game data files by slash-separated path.
type DataSource interface {
	Read(path string, maxSize int) ([]byte, error)
}

// Director switches levels. GameScreen requests the replacement; the
// driver performs it before the next tick.
type Director interface {
	LoadLevel(n int)
}

// Stats holds the walker tuning of every moving entity.
type Stats struct {
	PlayerPhysical WalkerStats
	PlayerDream    WalkerStats
	Minion         WalkerStats
}

// DefaultStats returns the built-in walker tuning.
func DefaultStats() Stats {
	return Stats{
		PlayerPhysical: WalkerStats{
			AccelGround: 1200, SpeedGround: 150,
			AccelAir: 300, SpeedAir: 180,
			JumpTime: 25, JumpAccel: 400, JumpSpeed: 280, JumpGravity: 1200, JumpDouble: false,
			StepTime: 0.16,
		},
		PlayerDream: WalkerStats{
			AccelGround: 600, SpeedGround: 130,
			AccelAir: 500, SpeedAir: 180,
			JumpTime: 25, JumpAccel: 400, JumpSpeed: 300, JumpGravity: 800, JumpDouble: true,
			StepTime: 0.20,
		},
		Minion: WalkerStats{
			AccelGround: 1200, SpeedGround: 120,
			AccelAir: 300, SpeedAir: 150,
			JumpTime: 25, JumpAccel: 400, JumpSpeed: 200, JumpGravity: 650, JumpDouble: true,
			StepTime: 0.3,
		},
	}
}

// Context carries the collaborators shared by every game screen. Nil
// Sound, Analytics and Director are allowed.
type Context struct {
	Control   *ControlState
	Sound     SoundPlayer
	Analytics AnalyticsSink
	Levels    DataSource
	Director  Director
	Stats     Stats
	Debug     bool

	attempts int
}
