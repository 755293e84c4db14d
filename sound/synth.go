package sound

import (
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/milk9111/dreamless/assets"
)

// voice describes a procedural stand-in for a recorded effect.
type voice struct {
	freq    float64 // start frequency in Hz, 0 for noise
	sweep   float64 // frequency multiplier over the clip
	length  float64 // seconds
	attack  float64 // seconds
	noise   float64 // noise mix, 0 to 1
	harmony float64 // second partial mix
}

var voices = [SfxCount]voice{
	SfxBoot:   {freq: 90, sweep: 0.6, length: 0.09, attack: 0.002, noise: 0.7},
	SfxClick:  {freq: 1800, sweep: 1, length: 0.03, attack: 0.001, noise: 0.2},
	SfxDream:  {freq: 330, sweep: 1.5, length: 1.2, attack: 0.3, harmony: 0.5},
	SfxFoot:   {freq: 140, sweep: 0.7, length: 0.07, attack: 0.002, noise: 0.8},
	SfxGrowl:  {freq: 70, sweep: 0.8, length: 0.6, attack: 0.05, noise: 0.4, harmony: 0.3},
	SfxGrunt:  {freq: 160, sweep: 0.7, length: 0.2, attack: 0.01, noise: 0.3, harmony: 0.4},
	SfxHaa:    {freq: 260, sweep: 1.2, length: 0.3, attack: 0.02, noise: 0.2, harmony: 0.5},
	SfxLocked: {freq: 220, sweep: 0.9, length: 0.15, attack: 0.001, noise: 0.5},
	SfxOpen:   {freq: 110, sweep: 1.4, length: 0.4, attack: 0.01, noise: 0.5},
	SfxPlink:  {freq: 1320, sweep: 1, length: 0.25, attack: 0.001, harmony: 0.3},
	SfxUnlock: {freq: 660, sweep: 1.5, length: 0.2, attack: 0.001, noise: 0.3},
	SfxWap:    {freq: 520, sweep: 0.5, length: 0.12, attack: 0.003, harmony: 0.2},
	SfxWha:    {freq: 300, sweep: 1.8, length: 0.35, attack: 0.01, noise: 0.1, harmony: 0.4},
}

// synthesize renders variant i of the effect as mono samples in [-1, 1].
// Variants differ by a small detune and a different noise seed.
func synthesize(s Sfx, i int) []float32 {
	v := voices[s]
	rng := rand.New(rand.NewSource(int64(s)*1000 + int64(i)))
	detune := 1 + 0.04*float64(i%5-2)
	n := int(v.length * assets.SampleRate)
	out := make([]float32, n)
	phase := 0.0
	for k := range out {
		t := float64(k) / assets.SampleRate
		rel := t / v.length
		f := v.freq * detune * math.Pow(v.sweep, rel)
		phase += 2 * math.Pi * f / assets.SampleRate
		tone := math.Sin(phase) + v.harmony*math.Sin(2*phase)
		if v.harmony > 0 {
			tone /= 1 + v.harmony
		}
		sample := (1-v.noise)*tone + v.noise*(rng.Float64()*2-1)
		out[k] = float32(sample * envelope(t, v.attack, v.length))
	}
	return out
}

// envelope is a linear attack followed by an exponential release that
// reaches silence at length.
func envelope(t, attack, length float64) float64 {
	if t < attack {
		return t / attack
	}
	rel := (t - attack) / (length - attack)
	if rel >= 1 {
		return 0
	}
	return math.Exp(-4*rel) * (1 - rel)
}

// Gain converts decibels to a linear amplitude.
func Gain(db float32) float64 {
	return math.Pow(10, float64(db)/20)
}

// panGains returns equal-power left and right gains for pan in [-1, 1].
func panGains(pan float32) (float64, float64) {
	p := math.Max(-1, math.Min(1, float64(pan)))
	angle := (p + 1) * math.Pi / 4
	return math.Cos(angle), math.Sin(angle)
}

// render converts mono samples to 16-bit little-endian stereo PCM.
func render(mono []float32, gain float64, pan float32) []byte {
	l, r := panGains(pan)
	out := make([]byte, len(mono)*4)
	for i, s := range mono {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(clip16(float64(s)*gain*l)))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(clip16(float64(s)*gain*r)))
	}
	return out
}

// decodePCM converts 16-bit stereo PCM back to mono samples.
func decodePCM(pcm []byte) []float32 {
	n := len(pcm) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		l := int16(binary.LittleEndian.Uint16(pcm[i*4:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i*4+2:]))
		out[i] = (float32(l) + float32(r)) / (2 * 32768)
	}
	return out
}

func clip16(v float64) int16 {
	v *= 32767
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// musicLoop renders a slow two-chord pad used when no music asset ships.
func musicLoop() []float32 {
	const seconds = 8
	n := seconds * assets.SampleRate
	out := make([]float32, n)
	chords := [2][3]float64{{110, 164.81, 220}, {98, 146.83, 196}}
	half := n / 2
	for k := range out {
		chord := chords[k/half]
		t := float64(k) / assets.SampleRate
		local := float64(k%half) / float64(half)
		swell := math.Sin(math.Pi * local)
		var s float64
		for _, f := range chord {
			s += math.Sin(2 * math.Pi * f * t)
		}
		out[k] = float32(0.25 * swell * s / float64(len(chord)))
	}
	return out
}
