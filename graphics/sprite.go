package graphics

// Sprite identifies an entry in the sprite sheet. Level tiles share the
// same enumeration, after the free-standing sprites.
type Sprite int

const (
	SpriteActionDrop Sprite = iota
	SpriteActionJump
	SpriteActionJumpBack
	SpriteActionTurn
	SpriteAdversary
	SpriteDialog
	SpriteDoorClosed
	SpriteDoorLocked
	SpriteDoorOpen
	SpriteGirl
	SpriteKey
	SpriteKnight1
	SpritePortal
	SpriteSelection
	SpriteTalkG1
	SpriteTalkS1

	TileNone
	TileReal1
	TileReal2
	TileReal3
	TileReal4
	TileReal5
	TileReal6
	TileReal7
	TileReal8

	SpriteCount
)

var spriteNames = [SpriteCount]string{
	"action_drop",
	"action_jump",
	"action_jumpback",
	"action_turn",
	"adversary",
	"dialog",
	"door_closed",
	"door_locked",
	"door_open",
	"girl",
	"key",
	"knight_1",
	"portal",
	"selection",
	"talkg1",
	"talks1",
	"tile_none",
	"tile_real_1",
	"tile_real_2",
	"tile_real_3",
	"tile_real_4",
	"tile_real_5",
	"tile_real_6",
	"tile_real_7",
	"tile_real_8",
}

func (s Sprite) String() string {
	if s < 0 || s >= SpriteCount {
		return "invalid"
	}
	return spriteNames[s]
}

// IsTile reports whether s is a level tile.
func (s Sprite) IsTile() bool {
	return s >= TileNone && s < SpriteCount
}

// SpriteRect is the location of a sprite in the sheet, in image pixels with
// Y pointing down. CX and CY give the pivot measured from the lower left
// corner of the sprite.
type SpriteRect struct {
	X, Y, W, H int
	CX, CY     int
}
