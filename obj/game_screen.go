package obj

import (
	"log"
	"math"
	"math/rand"
	"strconv"

	"github.com/milk9111/dreamless/analytics"
	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/sound"
)

const (
	// WakeTime is the length of the dream-to-physical transition in ticks.
	WakeTime = 32
	// WinTime is the delay between the last capture and the next level in
	// ticks.
	WinTime = 48

	noiseAccel   = 0.002
	noiseDamping = 0.95
)

// GameScreen runs one level: it owns the level, the camera and every
// entity, and decides when the level is won or replaced.
type GameScreen struct {
	ctx      *Context
	levelNum int
	level    *Level
	camera   Camera

	entities []Entity
	staged   []Entity

	time      uint32
	startTime uint32
	// dream is -1 while dreaming, 0 when awake, and counts down to 0 while
	// waking.
	dream      int
	noise      [4]float32
	noiseVel   [4]float32
	rng        *rand.Rand
	minions    int
	winCounter int
	nextID     int
	drawn      bool
	finished   bool

	analytics analytics.Level
}

// LoadGameScreen loads level n through ctx.Levels and starts it.
func LoadGameScreen(ctx *Context, n int, time uint32) (*GameScreen, error) {
	lvl, err := LoadLevel(ctx.Levels, strconv.Itoa(n))
	if err != nil {
		return nil, err
	}
	return NewGameScreen(ctx, n, lvl, time), nil
}

// NewGameScreen starts level n from an already parsed level, spawning its
// entities. The player starts out dreaming if the level has a gateway.
func NewGameScreen(ctx *Context, n int, lvl *Level, time uint32) *GameScreen {
	ctx.attempts++
	s := &GameScreen{
		ctx:       ctx,
		levelNum:  n,
		level:     lvl,
		time:      time,
		startTime: time,
		rng:       rand.New(rand.NewSource(int64(time))),
		analytics: analytics.Level{
			Index:     ctx.attempts,
			Level:     n,
			TimeStart: int(time),
			TimeWake:  -1,
			Status:    analytics.StatusInProgress,
		},
	}

	bounds := lvl.Bounds()
	s.camera.SetBounds(bounds)
	s.camera.SetFOV(common.IVec{X: common.ScreenWidth, Y: common.ScreenHeight})
	s.camera.SetTarget(common.FVec{X: float32(bounds.X1) / 2, Y: float32(bounds.Y1) / 2}, false)

	for _, sp := range lvl.SpawnPoints() {
		switch sp.Type {
		case SpawnPlayer:
			s.AddEntity(NewPlayer(s, sp.Pos))
		case SpawnMinion:
			s.AddEntity(NewMinion(s, sp.Pos, 1))
			s.minions++
		case SpawnMinionLeft:
			s.AddEntity(NewMinion(s, sp.Pos, -1))
			s.minions++
		case SpawnDoorClosed:
			s.AddEntity(NewItem(s, sp.Pos, ItemDoorClosed))
		case SpawnDoorLocked:
			s.AddEntity(NewItem(s, sp.Pos, ItemDoorLocked))
		case SpawnKey:
			s.AddEntity(NewItem(s, sp.Pos, ItemKey))
		case SpawnGateway:
			s.AddEntity(NewItem(s, sp.Pos, ItemGateway))
			s.dream = -1
		case SpawnAdversary:
			s.AddEntity(NewItem(s, sp.Pos, ItemAdversary))
		}
	}

	if ctx.Debug {
		log.Printf("level %d: %dx%d tiles, %d entities, %d minions, dreaming=%t",
			n, lvl.Width(), lvl.Height(), len(s.staged), s.minions, s.IsDreaming())
	}
	return s
}

// Level returns the level being played.
func (s *GameScreen) Level() *Level { return s.level }

// LevelNum returns the level number.
func (s *GameScreen) LevelNum() int { return s.levelNum }

// Camera returns the level camera.
func (s *GameScreen) Camera() *Camera { return &s.camera }

// MinionsLeft returns the number of minions still to be captured.
func (s *GameScreen) MinionsLeft() int { return s.minions }

// Finished reports whether the screen has asked to be replaced.
func (s *GameScreen) Finished() bool { return s.finished }

// NextID returns a new entity id.
func (s *GameScreen) NextID() int {
	id := s.nextID
	s.nextID++
	return id
}

// Analytics returns the record for this attempt.
func (s *GameScreen) Analytics() *analytics.Level { return &s.analytics }

// Entities returns the active entities. Entities added during the tick
// are not included until the next tick.
func (s *GameScreen) Entities() []Entity { return s.entities }

// AddEntity stages an entity. It becomes active at the start of the next
// tick.
func (s *GameScreen) AddEntity(e Entity) {
	if e == nil {
		return
	}
	s.staged = append(s.staged, e)
}

// SetCamera sets the camera target. An override target is followed
// without smoothing.
func (s *GameScreen) SetCamera(target common.FVec, override bool) {
	s.camera.SetTarget(target, override)
}

// IsDreaming reports whether any part of the dream is still visible.
func (s *GameScreen) IsDreaming() bool { return s.dream != 0 }

// World returns the dream blend delta milliseconds after the current
// tick, 1 in the dream and 0 when awake.
func (s *GameScreen) World(delta int) float32 {
	switch {
	case s.dream < 0:
		return 1
	case s.dream == 0:
		return 0
	}
	w := (float32(s.dream) - float32(delta)/common.FrameTime) / WakeTime
	return max(0, min(1, w))
}

// WakeUp starts the transition out of the dream. It does nothing if the
// player is already awake or waking.
func (s *GameScreen) WakeUp() {
	if s.dream >= 0 {
		return
	}
	s.dream = WakeTime
	s.analytics.TimeWake = s.elapsed()
	s.PlaySound(sound.SfxDream, -5)
}

// CaptureMinion records a minion reaching a door. Capturing the last one
// wins the level after WinTime ticks.
func (s *GameScreen) CaptureMinion() {
	s.minions--
	if s.minions == 0 {
		s.PlaySound(sound.SfxWha, -5)
		s.winCounter = WinTime
	}
}

// PlaySound plays a sound with no position.
func (s *GameScreen) PlaySound(sfx sound.Sfx, volume float32) {
	if s.ctx.Sound == nil {
		return
	}
	s.ctx.Sound.Play(s.time, sfx, volume, 0)
}

// PlaySoundAt plays a sound panned by its position relative to the view.
func (s *GameScreen) PlaySoundAt(sfx sound.Sfx, volume float32, pos common.FVec) {
	if s.ctx.Sound == nil {
		return
	}
	s.ctx.Sound.Play(s.time, sfx, volume, s.pan(pos))
}

func (s *GameScreen) pan(pos common.FVec) float32 {
	p := (pos.X - s.camera.Center().X) / (common.ScreenWidth / 2)
	return max(-1, min(1, p))
}

func (s *GameScreen) elapsed() int {
	return int(s.time - s.startTime)
}

// Update advances the level by one tick ending at time.
func (s *GameScreen) Update(time uint32) {
	s.time = time
	if s.finished {
		return
	}
	s.analytics.TimeEnd = s.elapsed()

	if s.winCounter > 0 {
		s.winCounter--
		if s.winCounter == 0 {
			s.finish(analytics.StatusSuccess, s.levelNum+1)
			return
		}
	}

	ctl := s.ctx.Control
	switch {
	case ctl.ButtonInstant(ButtonRestart):
		s.Restart()
		return
	case ctl.ButtonInstant(ButtonNextLevel):
		s.finish(analytics.StatusSkipNext, s.levelNum+1)
		return
	case ctl.ButtonInstant(ButtonPrevLevel):
		s.finish(analytics.StatusSkipPrev, max(1, s.levelNum-1))
		return
	}

	if s.dream > 0 {
		s.dream--
	}
	s.updateNoise()

	s.entities = append(s.entities, s.staged...)
	clear(s.staged)
	s.staged = s.staged[:0]

	for _, e := range s.entities {
		if e.Team() != TeamDead {
			e.Update()
		}
	}

	kept := s.entities[:0]
	for _, e := range s.entities {
		if e.Team() != TeamDead {
			kept = append(kept, e)
		}
	}
	clear(s.entities[len(kept):])
	s.entities = kept

	s.camera.Update()
}

func (s *GameScreen) updateNoise() {
	for i := range s.noise {
		s.noiseVel[i] += (s.rng.Float32()*2 - 1) * noiseAccel
		s.noiseVel[i] *= noiseDamping
		v := s.noise[i] + s.noiseVel[i]
		s.noise[i] = v - float32(math.Floor(float64(v)))
	}
}

// Restart abandons the attempt and asks for the same level again.
func (s *GameScreen) Restart() {
	if s.finished {
		return
	}
	s.finish(analytics.StatusRestart, s.levelNum)
}

// finish submits the attempt and asks for level n.
func (s *GameScreen) finish(status analytics.Status, n int) {
	s.finished = true
	s.analytics.Status = status
	s.analytics.TimeEnd = s.elapsed()
	if s.ctx.Analytics != nil {
		s.ctx.Analytics.Submit(s.analytics)
	}
	if s.ctx.Director != nil {
		s.ctx.Director.LoadLevel(n)
	}
}

// Close submits the attempt as still in progress, for when the game quits
// mid-level.
func (s *GameScreen) Close() {
	if s.finished {
		return
	}
	s.finished = true
	s.analytics.TimeEnd = s.elapsed()
	if s.ctx.Analytics != nil {
		s.ctx.Analytics.Submit(s.analytics)
	}
}

// Draw queues the level and every entity. The level geometry is queued
// only on the first draw.
func (s *GameScreen) Draw(gr Renderer, delta int) {
	if !s.drawn {
		gr.Clear(true)
		s.level.Draw(gr)
		s.drawn = true
	} else {
		gr.Clear(false)
	}
	gr.SetCamera(s.camera.DrawPos(delta))
	gr.SetWorld(s.World(delta))
	gr.SetNoise(s.noise)
	for _, e := range s.entities {
		e.Draw(gr, delta)
	}
}
