package obj

import "github.com/milk9111/dreamless/graphics"

// Action is a command the player can leave in the dream for minions.
type Action int

const (
	ActionJump Action = iota
	ActionJumpBack
	ActionTurn
	ActionDrop

	ActionCount
)

var actionLetters = map[byte]Action{
	'j': ActionJump,
	'b': ActionJumpBack,
	't': ActionTurn,
	'd': ActionDrop,
}

// ActionSprite returns the palette icon for an action.
func ActionSprite(a Action) graphics.Sprite {
	switch a {
	case ActionJump:
		return graphics.SpriteActionJump
	case ActionJumpBack:
		return graphics.SpriteActionJumpBack
	case ActionTurn:
		return graphics.SpriteActionTurn
	case ActionDrop:
		return graphics.SpriteActionDrop
	}
	panic("obj: invalid action")
}
