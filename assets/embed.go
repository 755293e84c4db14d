package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *
var assetsFS embed.FS

// SampleRate is the sample rate of the shared audio context.
const SampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the process-wide audio context, creating it on first
// use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	return LoadFile(path)
}

// DecodeAudio loads an embedded wav file and returns it as 16-bit stereo
// PCM at SampleRate, ready for audio.Context.NewPlayerFromBytes.
func DecodeAudio(path string) ([]byte, error) {
	b, err := LoadAudio(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(cleanAssetPath(path)), ".wav") {
		return b, nil
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read wav %q: %w", path, err)
	}
	return pcm, nil
}

// Exists reports whether an embedded asset is present.
func Exists(path string) bool {
	_, err := assetsFS.Open(cleanAssetPath(path))
	return err == nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
