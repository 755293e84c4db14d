package analytics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

// Version is the game version reported at session start.
var Version = "1.0"

// ComputerID returns the identifier stored in dir, creating one on first
// use.
func ComputerID(dir string) (string, error) {
	path := filepath.Join(dir, "computer-id")
	b, err := os.ReadFile(path)
	if err == nil {
		if id, perr := uuid.Parse(strings.TrimSpace(string(b))); perr == nil {
			return id.String(), nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("analytics: read computer id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("analytics: create %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("analytics: write computer id: %w", err)
	}
	return id, nil
}

// NewStart builds the session start record for this machine. The computer
// id is kept under the user's config directory.
func NewStart() Start {
	s := Start{
		GameVersion: fmt.Sprintf("Dreamless/%s (Go/%s)", Version, runtime.Version()),
		OSVersion:   runtime.GOOS + "/" + runtime.GOARCH,
	}
	dir, err := os.UserConfigDir()
	if err == nil {
		s.ComputerID, err = ComputerID(filepath.Join(dir, "dreamless"))
	}
	if err != nil {
		logger.Printf("computer id unavailable: %v", err)
		s.ComputerID = uuid.NewString()
	}
	return s
}
