package levels

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

//go:embed level/*.txt
var LevelsFS embed.FS

// ErrTooLarge is returned when a file is bigger than the caller allows.
var ErrTooLarge = errors.New("levels: file too large")

// DefaultDir is where level files live relative to the working directory
// when running from the repository.
const DefaultDir = "levels"

// Source reads level data, preferring files on disk under Dir over the
// embedded copies so levels can be edited without rebuilding.
type Source struct {
	// Dir is the disk override directory. Empty disables the override.
	Dir string
}

// Read returns the contents of path, for example "level/1.txt". Files
// larger than maxSize bytes are rejected with ErrTooLarge.
func (s Source) Read(path string, maxSize int) ([]byte, error) {
	clean := cleanLevelPath(path)
	data, err := s.readDisk(clean)
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
		if err != nil {
			return nil, err
		}
	}
	if len(data) > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, clean, len(data), maxSize)
	}
	return data, nil
}

func (s Source) readDisk(clean string) ([]byte, error) {
	if s.Dir == "" {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(diskLevelPath(s.Dir, clean))
}

// Exists reports whether level n can be read.
func (s Source) Exists(n int) bool {
	clean := levelFile(n)
	if s.Dir != "" {
		if _, err := os.Stat(diskLevelPath(s.Dir, clean)); err == nil {
			return true
		}
	}
	_, err := LevelsFS.Open(clean)
	return err == nil
}

// Count returns how many levels are numbered consecutively from 1.
func (s Source) Count() int {
	n := 0
	for s.Exists(n + 1) {
		n++
	}
	return n
}

// ModTime returns the modification time of the disk copy of path.
func (s Source) ModTime(path string) (time.Time, bool) {
	if s.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(diskLevelPath(s.Dir, cleanLevelPath(path)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// LevelNum extracts the level number from a level file path.
func LevelNum(path string) (int, bool) {
	base := filepath.Base(filepath.ToSlash(path))
	name, ok := strings.CutSuffix(base, ".txt")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func levelFile(n int) string {
	return "level/" + strconv.Itoa(n) + ".txt"
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	return s
}

func diskLevelPath(dir, clean string) string {
	return filepath.Join(dir, filepath.FromSlash(clean))
}
