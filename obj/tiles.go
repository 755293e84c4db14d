package obj

import (
	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/graphics"
)

// TileType classifies a tile for collision.
type TileType int

const (
	// TileOpen allows free movement.
	TileOpen TileType = iota
	// TileSolid is completely solid.
	TileSolid
	// TileRampR1 rises to the right over the lower half of the tile.
	TileRampR1
	// TileRampR2 rises to the right over the upper half of the tile.
	TileRampR2
	// TileRampL1 rises to the left over the upper half of the tile.
	TileRampL1
	// TileRampL2 rises to the left over the lower half of the tile.
	TileRampL2
)

// TileInfo is the resolved meaning of a level glyph.
type TileInfo struct {
	Tile graphics.Sprite
	Type TileType
}

// SpawnType identifies what a spawn glyph creates.
type SpawnType int

const (
	SpawnPlayer SpawnType = iota
	SpawnMinion
	SpawnMinionLeft
	SpawnDoorClosed
	SpawnDoorLocked
	SpawnKey
	SpawnGateway
	SpawnAdversary
)

// SpawnPoint is an entity spawn location in world pixels.
type SpawnPoint struct {
	Type SpawnType
	Pos  common.IVec
}

var tileSolid = TileInfo{Tile: graphics.TileNone, Type: TileSolid}

// tileTable maps every byte of a level file to its tile. tileKnown marks
// the bytes that are tile glyphs.
var tileTable, tileKnown = buildTileTable()

var spawnGlyphs = map[byte]SpawnType{
	'P': SpawnPlayer,
	'M': SpawnMinion,
	'N': SpawnMinionLeft,
	'D': SpawnDoorClosed,
	'X': SpawnDoorLocked,
	'k': SpawnKey,
	'G': SpawnGateway,
	'S': SpawnAdversary,
}

func buildTileTable() (table [256]TileInfo, known [256]bool) {
	raw := []struct {
		c    byte
		tile graphics.Sprite
		typ  TileType
	}{
		{' ', graphics.TileNone, TileOpen},
		{'.', graphics.TileNone, TileOpen},
		{'\t', graphics.TileNone, TileOpen},
		{'#', graphics.TileReal1, TileSolid},
		{'%', graphics.TileReal2, TileSolid},
		{'=', graphics.TileReal3, TileSolid},
		{'@', graphics.TileReal4, TileSolid},
		{'r', graphics.TileReal5, TileRampR1},
		{'R', graphics.TileReal6, TileRampR2},
		{'l', graphics.TileReal7, TileRampL1},
		{'L', graphics.TileReal8, TileRampL2},
	}
	for i := range table {
		table[i] = TileInfo{Tile: graphics.TileNone, Type: TileOpen}
	}
	for _, r := range raw {
		table[r.c] = TileInfo{Tile: r.tile, Type: r.typ}
		known[r.c] = true
	}
	return table, known
}

// TileFloor returns the floor height within a tile of the given type at a
// horizontal offset relx from the tile's left edge.
func TileFloor(t TileType, relx float32) float32 {
	switch t {
	case TileOpen:
		return 0
	case TileSolid:
		return common.TileSize
	case TileRampR1:
		return relx * 0.5
	case TileRampR2:
		return relx*0.5 + 16
	case TileRampL1:
		return relx*-0.5 + 32
	case TileRampL2:
		return relx*-0.5 + 16
	}
	panic("obj: invalid tile type")
}
