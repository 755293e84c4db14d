package obj

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/graphics"
)

// MaxLevelSize is the largest level file accepted, in bytes.
const MaxLevelSize = 32 * 1024

var (
	ErrBadGlyph    = errors.New("obj: unknown level glyph")
	ErrBadProperty = errors.New("obj: bad level property")
	ErrBadDialogue = errors.New("obj: bad dialogue line")
	ErrEmptyLevel  = errors.New("obj: level has no tiles")
)

// Speaker identifies who says a line of dialogue.
type Speaker int

const (
	SpeakerGirl Speaker = iota
	SpeakerShadow
)

// DialogueLine is one line of level dialogue.
type DialogueLine struct {
	Speaker Speaker
	Text    string
}

// Level is an immutable tile grid with spawn points. Row 0 is the bottom
// row of the level.
type Level struct {
	width    int
	height   int
	data     []byte
	spawn    []SpawnPoint
	actions  [ActionCount]bool
	dialogue []DialogueLine
}

// LoadLevel reads level/<name>.txt from src and parses it.
func LoadLevel(src DataSource, name string) (*Level, error) {
	path := "level/" + name + ".txt"
	data, err := src.Read(path, MaxLevelSize)
	if err != nil {
		return nil, fmt.Errorf("obj: load level %s: %w", name, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("obj: parse level %s: %w", name, err)
	}
	return lvl, nil
}

// ParseLevel parses the text form of a level. Every bad glyph, property and
// dialogue line is reported in the returned error.
func ParseLevel(data []byte) (*Level, error) {
	lines := splitLines(data)

	rows := len(lines)
	for i, line := range lines {
		if len(line) > 0 && line[0] == '-' {
			rows = i
			break
		}
	}
	columns := 0
	for _, line := range lines[:rows] {
		columns = max(columns, len(line))
	}
	if rows == 0 || columns == 0 {
		return nil, ErrEmptyLevel
	}

	lvl := &Level{
		width:  columns,
		height: rows,
		data:   bytes.Repeat([]byte{' '}, columns*rows),
	}

	var errs []error
	for i, line := range lines[:rows] {
		y := rows - 1 - i
		for x := 0; x < len(line); x++ {
			c := line[x]
			if tileKnown[c] {
				lvl.data[y*columns+x] = c
				continue
			}
			if st, ok := spawnGlyphs[c]; ok {
				lvl.spawn = append(lvl.spawn, SpawnPoint{
					Type: st,
					Pos:  common.TileCenter(common.IVec{X: x, Y: y}),
				})
				continue
			}
			errs = append(errs, fmt.Errorf("%w: line %d column %d: %q", ErrBadGlyph, i+1, x+1, c))
		}
	}

	rest := lines[rows:]
	if len(rest) > 0 {
		rest = rest[1:]
	}
	lineno := rows + 2
	for len(rest) > 0 {
		line := rest[0]
		rest = rest[1:]
		if len(line) > 0 && line[0] == '-' {
			break
		}
		if err := lvl.parseProperty(line); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineno, err))
		}
		lineno++
	}
	lineno++
	for _, line := range rest {
		if err := lvl.parseDialogue(line); err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineno, err))
		}
		lineno++
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return lvl, nil
}

func splitLines(data []byte) []string {
	text := string(data)
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func (l *Level) parseProperty(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("%w: missing ':' in %q", ErrBadProperty, line)
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	switch name {
	case "actions":
		for i := 0; i < len(value); i++ {
			c := value[i]
			if c == ' ' || c == '\t' {
				continue
			}
			a, ok := actionLetters[c]
			if !ok {
				return fmt.Errorf("%w: unknown action %q", ErrBadProperty, c)
			}
			l.actions[a] = true
		}
		return nil
	}
	return fmt.Errorf("%w: unknown property %q", ErrBadProperty, name)
}

func (l *Level) parseDialogue(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	who, text, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("%w: missing ':' in %q", ErrBadDialogue, line)
	}
	var speaker Speaker
	switch strings.TrimSpace(who) {
	case "girl":
		speaker = SpeakerGirl
	case "shadow":
		speaker = SpeakerShadow
	default:
		return fmt.Errorf("%w: unknown speaker %q", ErrBadDialogue, strings.TrimSpace(who))
	}
	l.dialogue = append(l.dialogue, DialogueLine{Speaker: speaker, Text: strings.TrimSpace(text)})
	return nil
}

// Width returns the level width in tiles.
func (l *Level) Width() int { return l.width }

// Height returns the level height in tiles.
func (l *Level) Height() int { return l.height }

// TileAt returns the tile at a tile position. Positions outside the grid
// are solid.
func (l *Level) TileAt(pos common.IVec) TileInfo {
	if pos.X < 0 || pos.Y < 0 || pos.X >= l.width || pos.Y >= l.height {
		return tileSolid
	}
	return tileTable[l.data[pos.Y*l.width+pos.X]]
}

func (l *Level) tileFloor(tile common.IVec, relx float32) float32 {
	return TileFloor(l.TileAt(tile).Type, relx)
}

// HitTest reports whether a point is inside solid or ramp material.
func (l *Level) HitTest(pos common.FVec) bool {
	tile := common.TilePos(pos)
	rel := common.TileRelPos(pos)
	return l.tileFloor(tile, rel.X) > rel.Y
}

// FindFloor returns the height of the floor surface in the column
// containing pos, searching down through open tiles or up through solid
// ones from the tile containing pos.
func (l *Level) FindFloor(pos common.FVec) float32 {
	tile := common.TilePos(pos)
	relx := common.TileRelPos(pos).X
	h := l.tileFloor(tile, relx)
	limit := l.height + 2

	switch {
	case h <= 0:
		for i := 0; i < limit && h <= 0; i++ {
			tile.Y--
			h = l.tileFloor(tile, relx)
		}
		if h >= common.TileSize {
			return float32((tile.Y + 1) * common.TileSize)
		}
	case h >= common.TileSize:
		for i := 0; i < limit && h >= common.TileSize; i++ {
			tile.Y++
			h = l.tileFloor(tile, relx)
		}
		if h <= 0 {
			return float32(tile.Y * common.TileSize)
		}
	}
	return float32(tile.Y*common.TileSize) + h
}

// Bounds returns the level extent in pixels.
func (l *Level) Bounds() common.IRect {
	return common.IRect{X1: l.width * common.TileSize, Y1: l.height * common.TileSize}
}

// SpawnPoints returns the spawn points in file order, top row first.
func (l *Level) SpawnPoints() []SpawnPoint {
	return l.spawn
}

// IsActionAllowed reports whether the player may place the action.
func (l *Level) IsActionAllowed(a Action) bool {
	return l.actions[a]
}

// Dialogue returns the level's dialogue lines.
func (l *Level) Dialogue() []DialogueLine {
	return l.dialogue
}

// Draw queues every visible tile on the tile layer.
func (l *Level) Draw(gr Renderer) {
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			t := tileTable[l.data[y*l.width+x]]
			if t.Tile == graphics.TileNone {
				continue
			}
			gr.AddSprite(t.Tile, common.IVec{X: x * common.TileSize, Y: y * common.TileSize}, graphics.LayerTile, graphics.Normal)
		}
	}
}
