package obj

import (
	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/graphics"
	"github.com/milk9111/dreamless/sound"
)

const (
	minionJumpTime = 10
	minionHoldTime = 15
	minionTurnTime = 5
)

var (
	minionHitBox    = common.Centered(12, 32)
	minionMemoryBox = common.Centered(20, 40)
)

// minionState is one state of the minion's behavior. A state with a
// timeout calls Expire when the time runs out.
type minionState interface {
	Name() string
	// HoldJump reports whether the jump button is held in this state.
	HoldJump() bool
	Expire(m *Minion)
}

type minionWalkState struct{}

func (minionWalkState) Name() string     { return "walk" }
func (minionWalkState) HoldJump() bool   { return false }
func (minionWalkState) Expire(m *Minion) { m.setState(stateMinionWalk, 0) }

// minionJumpState waits for the walker to leave the ground.
type minionJumpState struct{}

func (minionJumpState) Name() string     { return "jump" }
func (minionJumpState) HoldJump() bool   { return true }
func (minionJumpState) Expire(m *Minion) { m.setState(stateMinionWalk, 0) }

// minionJumpingState holds the jump for a while after takeoff.
type minionJumpingState struct{}

func (minionJumpingState) Name() string     { return "jumping" }
func (minionJumpingState) HoldJump() bool   { return true }
func (minionJumpingState) Expire(m *Minion) { m.setState(stateMinionWalk, 0) }

// minionJumpBackState turns around, then jumps.
type minionJumpBackState struct{}

func (minionJumpBackState) Name() string   { return "jump_back" }
func (minionJumpBackState) HoldJump() bool { return false }
func (minionJumpBackState) Expire(m *Minion) {
	m.setState(stateMinionJump, minionJumpTime)
}

var (
	stateMinionWalk     minionState = &minionWalkState{}
	stateMinionJump     minionState = &minionJumpState{}
	stateMinionJumping  minionState = &minionJumpingState{}
	stateMinionJumpBack minionState = &minionJumpBackState{}
)

type minionMemory struct {
	bounds common.IRect
	id     int
	forget bool
}

// Minion walks the physical world while the player is awake, reacting to
// the doors, keys and actions it walks into.
type Minion struct {
	entityBase
	mover  Mover
	walker Walker

	state     minionState
	stateTime int
	direction int
	hasKey    bool
	memory    []minionMemory
}

// NewMinion creates a minion at pos walking in direction (1 or -1).
func NewMinion(scr *GameScreen, pos common.IVec, direction int) *Minion {
	return &Minion{
		entityBase: newEntityBase(scr, TeamFoe, pos),
		mover:      NewMover(pos),
		walker:     NewWalker(),
		state:      stateMinionWalk,
		direction:  direction,
	}
}

func (m *Minion) Kind() Kind { return KindMinion }

// State returns the name of the current state.
func (m *Minion) State() string { return m.state.Name() }

// Direction returns 1 when walking right and -1 when walking left.
func (m *Minion) Direction() int { return m.direction }

// HasKey reports whether the minion carries a key.
func (m *Minion) HasKey() bool { return m.hasKey }

func (m *Minion) setState(s minionState, time int) {
	m.state = s
	m.stateTime = time
}

func (m *Minion) Update() {
	scr := m.screen
	if scr.IsDreaming() {
		return
	}

	if m.stateTime > 0 {
		m.stateTime--
		if m.stateTime == 0 {
			m.state.Expire(m)
		}
	}

	drive := common.FVec{X: float32(m.direction)}
	if m.state.HoldJump() {
		drive.Y = 1
	}

	flags := m.walker.Update(&scr.ctx.Stats.Minion, scr.Level(), &m.mover, drive)
	m.pos = m.mover.Pos().IVec()

	if flags&FlagFootstep != 0 {
		scr.PlaySoundAt(sound.SfxBoot, -10, m.mover.Pos())
	}
	if flags&FlagJumped != 0 {
		scr.PlaySoundAt(sound.SfxGrunt, -1, m.mover.Pos())
		m.setState(stateMinionJumping, minionHoldTime)
	}
	airborne := flags&FlagAirborne != 0
	if !airborne && m.state == stateMinionJumping {
		m.state = stateMinionWalk
	}
	if flags&FlagBlocked != 0 && !airborne && m.state == stateMinionWalk {
		m.direction = -m.direction
	}

	hitbox := minionHitBox.Offset(m.pos)
	for _, ent := range scr.Entities() {
		if m.remembers(ent.ID()) {
			continue
		}
		if m.state != stateMinionWalk {
			continue
		}
		if ent.Team() != TeamInteractive || !hitbox.Contains(ent.Pos()) {
			continue
		}
		if item, ok := ent.(*Item); ok {
			m.hitItem(item)
		}
	}

	kept := m.memory[:0]
	for _, mem := range m.memory {
		if !mem.forget {
			kept = append(kept, mem)
		}
	}
	m.memory = kept
}

// remembers reports whether the entity was already handled, and marks it
// to be forgotten once the minion has left its neighborhood.
func (m *Minion) remembers(id int) bool {
	for i := range m.memory {
		mem := &m.memory[i]
		if mem.id != id {
			continue
		}
		if !mem.bounds.Contains(m.pos) {
			mem.forget = true
		}
		return true
	}
	return false
}

func (m *Minion) hitItem(item *Item) {
	scr := m.screen
	pos := m.mover.Pos()
	switch item.Type() {
	case ItemDoorClosed:
		m.team = TeamDead
		item.SetType(ItemDoorOpen)
		scr.PlaySoundAt(sound.SfxOpen, -10, pos)
		scr.CaptureMinion()
	case ItemDoorLocked:
		if m.hasKey {
			m.team = TeamDead
			scr.PlaySoundAt(sound.SfxUnlock, -10, pos)
			item.SetType(ItemDoorOpen)
			scr.CaptureMinion()
		} else {
			scr.PlaySoundAt(sound.SfxLocked, -10, pos)
			m.memorize(item)
		}
	case ItemKey:
		if !m.hasKey {
			m.hasKey = true
			item.Destroy()
			scr.PlaySoundAt(sound.SfxPlink, -10, pos)
		}
	case ItemAction:
		m.memorize(item)
		m.doAction(item, item.Action())
	}
}

func (m *Minion) doAction(item *Item, a Action) {
	scr := m.screen
	switch a {
	case ActionJump:
		m.setState(stateMinionJump, minionJumpTime)
	case ActionJumpBack:
		scr.PlaySoundAt(sound.SfxHaa, -10, m.mover.Pos())
		m.direction = -m.direction
		m.setState(stateMinionJumpBack, minionTurnTime)
	case ActionTurn:
		scr.PlaySoundAt(sound.SfxHaa, -10, m.mover.Pos())
		m.direction = -m.direction
	case ActionDrop:
		if m.hasKey {
			item.Destroy()
			m.hasKey = false
			key := NewItem(scr, m.pos, ItemKey)
			scr.AddEntity(key)
			m.memorize(key)
		}
	}
}

func (m *Minion) memorize(ent Entity) {
	m.memory = append(m.memory, minionMemory{
		bounds: minionMemoryBox.Offset(ent.Pos()),
		id:     ent.ID(),
	})
}

func (m *Minion) Draw(gr Renderer, delta int) {
	pos := m.mover.DrawPos(delta)
	o := graphics.Normal
	if m.direction < 0 {
		o = graphics.FlipHorizontal
	}
	gr.AddSprite(graphics.SpriteKnight1, pos, graphics.LayerPhysical, o)
	if m.hasKey {
		gr.AddSprite(graphics.SpriteKey, pos.Add(common.IVec{Y: 24}), graphics.LayerPhysical, graphics.Normal)
	}
}
