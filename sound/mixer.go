package sound

import (
	"bytes"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/dreamless/assets"
)

// MusicVolume is the music level in decibels.
const MusicVolume = -12

// Mixer plays sound effects and the music loop. A nil *Mixer is silent.
type Mixer struct {
	ctx    *audio.Context
	master float64
	muted  bool

	clips [SfxCount][][]float32

	mu      sync.Mutex
	rng     *rand.Rand
	pending []queued
	playing []*audio.Player

	music *audio.Player
}

// NewMixer loads every effect. Variants are read from "sfx/<name>.wav" when
// the asset exists and synthesized otherwise. masterDB offsets every
// effect.
func NewMixer(ctx *audio.Context, masterDB float32, muted bool) *Mixer {
	m := &Mixer{
		ctx:    ctx,
		master: Gain(masterDB),
		muted:  muted,
		rng:    rand.New(rand.NewSource(1)),
	}
	for s := Sfx(0); s < SfxCount; s++ {
		m.clips[s] = loadVariants(s)
	}
	return m
}

func loadVariants(s Sfx) [][]float32 {
	clips := make([][]float32, s.Variants())
	for i := range clips {
		path := "sfx/" + s.VariantName(i) + ".wav"
		if assets.Exists(path) {
			pcm, err := assets.DecodeAudio(path)
			if err == nil {
				clips[i] = decodePCM(pcm)
				continue
			}
			log.Printf("%s: failed to load: %v", path, err)
		}
		clips[i] = synthesize(s, i)
	}
	return clips
}

// queued is an effect waiting for Commit, stamped with the game time of
// the tick that played it.
type queued struct {
	time uint32
	pcm  []byte
}

// Play queues a random variant of sfx until the next Commit. volume is in
// decibels and pan runs from -1 (left) to 1 (right). time is the game clock
// of the tick requesting the effect.
func (m *Mixer) Play(time uint32, sfx Sfx, volume, pan float32) {
	if m == nil || m.muted {
		return
	}
	if sfx < 0 || sfx >= SfxCount {
		panic(fmt.Sprintf("sound: invalid sfx %d", int(sfx)))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	variants := m.clips[sfx]
	clip := variants[m.rng.Intn(len(variants))]
	m.pending = append(m.pending, queued{time: time, pcm: render(clip, Gain(volume)*m.master, pan)})
}

// Commit starts the effects queued since the last commit. Each effect is
// delayed by its time after the earliest one, so ticks simulated together
// in one frame keep their spacing.
func (m *Mixer) Commit() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pending := m.pending
	m.pending = nil
	if m.ctx == nil || len(pending) == 0 {
		return
	}
	m.prune()
	for i, delay := range delays(pending) {
		p := m.ctx.NewPlayerFromBytes(delayPCM(pending[i].pcm, delay))
		p.Play()
		m.playing = append(m.playing, p)
	}
}

// delays returns each entry's offset in milliseconds from the earliest.
func delays(q []queued) []uint32 {
	out := make([]uint32, len(q))
	if len(q) == 0 {
		return out
	}
	first := q[0].time
	for _, e := range q[1:] {
		if int32(e.time-first) < 0 {
			first = e.time
		}
	}
	for i, e := range q {
		out[i] = e.time - first
	}
	return out
}

// delayPCM prefixes 16-bit stereo pcm with ms milliseconds of silence.
func delayPCM(pcm []byte, ms uint32) []byte {
	if ms == 0 {
		return pcm
	}
	pad := int(ms) * assets.SampleRate / 1000 * 4
	out := make([]byte, pad+len(pcm))
	copy(out[pad:], pcm)
	return out
}

// prune drops finished players.
func (m *Mixer) prune() {
	kept := m.playing[:0]
	for _, p := range m.playing {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	for i := len(kept); i < len(m.playing); i++ {
		m.playing[i] = nil
	}
	m.playing = kept
}

// Music starts the music loop, or adjusts its volume if it is already
// playing.
func (m *Mixer) Music(volume float32) {
	if m == nil || m.muted || m.ctx == nil {
		return
	}
	if m.music == nil {
		var pcm []byte
		if assets.Exists("music.wav") {
			b, err := assets.DecodeAudio("music.wav")
			if err != nil {
				log.Printf("music failed to load: %v", err)
			} else {
				pcm = b
			}
		}
		if pcm == nil {
			pcm = render(musicLoop(), 1, 0)
		}
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		p, err := m.ctx.NewPlayer(loop)
		if err != nil {
			log.Printf("music failed to start: %v", err)
			return
		}
		m.music = p
		m.music.Play()
	}
	m.music.SetVolume(Gain(volume) * m.master)
}

// Close stops all playback.
func (m *Mixer) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.playing {
		_ = p.Close()
	}
	m.playing = nil
	m.pending = nil
	if m.music != nil {
		_ = m.music.Close()
		m.music = nil
	}
}
