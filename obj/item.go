package obj

import (
	"fmt"

	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/graphics"
)

// ItemType identifies what an item is.
type ItemType int

const (
	ItemDoorOpen ItemType = iota
	ItemDoorClosed
	ItemDoorLocked
	ItemKey
	ItemAction
	ItemGateway
	ItemAdversary
)

func (t ItemType) String() string {
	switch t {
	case ItemDoorOpen:
		return "door_open"
	case ItemDoorClosed:
		return "door_closed"
	case ItemDoorLocked:
		return "door_locked"
	case ItemKey:
		return "key"
	case ItemAction:
		return "action"
	case ItemGateway:
		return "gateway"
	case ItemAdversary:
		return "adversary"
	}
	return fmt.Sprintf("ItemType(%d)", int(t))
}

// Item is a stationary object minions and the player can touch.
type Item struct {
	entityBase
	itemType ItemType
	action   Action
}

// NewItem creates an interactive item at pos. It is not added to the
// screen.
func NewItem(scr *GameScreen, pos common.IVec, t ItemType) *Item {
	return &Item{entityBase: newEntityBase(scr, TeamInteractive, pos), itemType: t}
}

func (it *Item) Kind() Kind { return KindItem }

// Type returns the item type.
func (it *Item) Type() ItemType { return it.itemType }

// SetType changes the item type, for example when a door opens.
func (it *Item) SetType(t ItemType) { it.itemType = t }

// Action returns the action carried by an action item.
func (it *Item) Action() Action { return it.action }

// SetAction sets the action carried by an action item.
func (it *Item) SetAction(a Action) { it.action = a }

// Destroy removes the item at the end of the tick.
func (it *Item) Destroy() { it.team = TeamDead }

func (it *Item) Update() {}

func (it *Item) Draw(gr Renderer, delta int) {
	layer, visible := it.layer()
	if !visible {
		return
	}
	gr.AddSprite(it.Sprite(), it.pos, layer, graphics.Normal)
}

// layer returns the layer the item is drawn on. Gateways and adversaries
// exist only in the dream and vanish once the player wakes.
func (it *Item) layer() (graphics.Layer, bool) {
	switch it.itemType {
	case ItemDoorOpen, ItemDoorClosed, ItemDoorLocked, ItemKey:
		return graphics.LayerPhysical, true
	case ItemAction:
		return graphics.LayerDream, true
	case ItemGateway, ItemAdversary:
		return graphics.LayerDream, it.screen.IsDreaming()
	}
	panic(fmt.Sprintf("obj: invalid item type %d", int(it.itemType)))
}

// Sprite returns the sprite for the item's current type.
func (it *Item) Sprite() graphics.Sprite {
	switch it.itemType {
	case ItemDoorOpen:
		return graphics.SpriteDoorOpen
	case ItemDoorClosed:
		return graphics.SpriteDoorClosed
	case ItemDoorLocked:
		return graphics.SpriteDoorLocked
	case ItemKey:
		return graphics.SpriteKey
	case ItemAction:
		return ActionSprite(it.action)
	case ItemGateway:
		return graphics.SpritePortal
	case ItemAdversary:
		return graphics.SpriteAdversary
	}
	panic(fmt.Sprintf("obj: invalid item type %d", int(it.itemType)))
}
