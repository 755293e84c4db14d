package obj

import "github.com/milk9111/dreamless/common"

// Team classifies entities for interaction.
type Team int

const (
	// TeamDead marks an entity for removal at the end of the tick.
	TeamDead Team = iota
	// TeamAmbient has no special properties.
	TeamAmbient
	// TeamInteractive can be touched by the player and minions.
	TeamInteractive
	// TeamFriend is the player.
	TeamFriend
	// TeamFoe is a minion.
	TeamFoe
)

// Kind identifies the concrete entity type.
type Kind int

const (
	KindPlayer Kind = iota
	KindMinion
	KindItem
)

// Entity is anything that lives on a game screen. The set of entities is
// closed: *Player, *Minion and *Item.
type Entity interface {
	ID() int
	Team() Team
	Pos() common.IVec
	Kind() Kind
	Update()
	Draw(gr Renderer, delta int)

	base() *entityBase
}

type entityBase struct {
	screen *GameScreen
	id     int
	team   Team
	pos    common.IVec
}

func newEntityBase(scr *GameScreen, team Team, pos common.IVec) entityBase {
	return entityBase{screen: scr, id: scr.NextID(), team: team, pos: pos}
}

func (e *entityBase) ID() int           { return e.id }
func (e *entityBase) Team() Team        { return e.team }
func (e *entityBase) Pos() common.IVec  { return e.pos }
func (e *entityBase) base() *entityBase { return e }
