package obj

import (
	"github.com/milk9111/dreamless/common"
	"github.com/milk9111/dreamless/graphics"
	"github.com/milk9111/dreamless/sound"
)

const (
	dialogueSticky  = 25
	dialogueDismiss = 32 * 20
	girlColor       = 20
	shadowColor     = 28

	// dialogueCamera lifts the view so the dialogue box does not cover the
	// player.
	dialogueCamera = -80
)

var playerHitBox = common.Centered(12, 24)

// Player is the girl. She walks in both worlds and, while dreaming, places
// actions for the minions and talks to the shadow.
type Player struct {
	entityBase
	mover  Mover
	walker Walker

	actions   []Action
	selection int
	direction int

	// dialogue is the 1-based line on screen, 0 before the shadow is met
	// and -1 once the conversation is over.
	dialogue     int
	dialogueTime int
}

// NewPlayer creates the player at pos with the level's allowed actions.
func NewPlayer(scr *GameScreen, pos common.IVec) *Player {
	p := &Player{
		entityBase: newEntityBase(scr, TeamFriend, pos),
		mover:      NewMover(pos),
		walker:     NewWalker(),
		direction:  1,
	}
	for a := Action(0); a < ActionCount; a++ {
		if scr.Level().IsActionAllowed(a) {
			p.actions = append(p.actions, a)
		}
	}
	return p
}

func (p *Player) Kind() Kind { return KindPlayer }

// Selection returns the selected action and whether any action is
// available.
func (p *Player) Selection() (Action, bool) {
	if len(p.actions) == 0 {
		return 0, false
	}
	return p.actions[p.selection], true
}

// Dialogue returns the 1-based index of the dialogue line on screen, 0 if
// none has been shown and -1 once all lines are done.
func (p *Player) Dialogue() int { return p.dialogue }

// Direction returns 1 when facing right and -1 when facing left.
func (p *Player) Direction() int { return p.direction }

func (p *Player) stats() *WalkerStats {
	st := &p.screen.ctx.Stats
	if p.screen.IsDreaming() {
		return &st.PlayerDream
	}
	return &st.PlayerPhysical
}

func (p *Player) Update() {
	scr := p.screen
	ctl := scr.ctx.Control
	drive := ctl.Get2D()
	flags := p.walker.Update(p.stats(), scr.Level(), &p.mover, drive)
	if drive.X < -0.5 {
		p.direction = -1
	} else if drive.X > 0.5 {
		p.direction = 1
	}
	scr.SetCamera(p.mover.Pos(), false)
	p.pos = p.mover.Pos().IVec()
	if flags&FlagFootstep != 0 {
		scr.PlaySoundAt(sound.SfxFoot, -10, p.mover.Pos())
	}

	if !scr.IsDreaming() {
		return
	}

	hitbox := playerHitBox.Offset(p.pos)
	for _, ent := range scr.Entities() {
		if ent.Team() != TeamInteractive || !hitbox.Contains(ent.Pos()) {
			continue
		}
		if item, ok := ent.(*Item); ok {
			p.hitItem(item)
		}
	}

	switch {
	case p.dialogue > 0:
		scr.SetCamera(p.mover.Pos().Add(common.FVec{Y: dialogueCamera}), true)
		p.dialogueTime++
		if p.dialogueTime >= dialogueSticky {
			dismiss := p.dialogueTime >= dialogueDismiss ||
				ctl.ButtonInstant(ButtonNext) ||
				ctl.ButtonInstant(ButtonPrev) ||
				ctl.ButtonInstant(ButtonAction) ||
				ctl.ButtonInstant(ButtonEscape)
			if dismiss {
				p.showDialogue(p.dialogue + 1)
			}
		}
	case len(p.actions) > 0:
		move := 0
		if ctl.ButtonInstant(ButtonNext) {
			move++
		}
		if ctl.ButtonInstant(ButtonPrev) {
			move--
		}
		if move != 0 {
			scr.PlaySound(sound.SfxClick, -10)
		}
		n := len(p.actions)
		p.selection = (p.selection + move + n) % n

		if ctl.ButtonInstant(ButtonAction) {
			scr.Analytics().ActionCount++
			scr.PlaySoundAt(sound.SfxWap, -10, p.mover.Pos())
			item := NewItem(scr, p.pos, ItemAction)
			item.SetAction(p.actions[p.selection])
			scr.AddEntity(item)
		}
	}
}

func (p *Player) hitItem(item *Item) {
	switch item.Type() {
	case ItemGateway:
		p.screen.WakeUp()
	case ItemAdversary:
		if p.dialogue == 0 {
			p.showDialogue(1)
		}
	}
}

func (p *Player) showDialogue(index int) {
	p.screen.Analytics().TalkedToShadow = true
	if index > len(p.screen.Level().Dialogue()) {
		p.dialogue = -1
		return
	}
	p.dialogue = index
	p.dialogueTime = 0
}

func (p *Player) Draw(gr Renderer, delta int) {
	o := graphics.Normal
	if p.direction < 0 {
		o = graphics.FlipHorizontal
	}
	gr.AddSprite(graphics.SpriteGirl, p.mover.DrawPos(delta), graphics.LayerBoth, o)

	if p.screen.IsDreaming() && len(p.actions) > 0 {
		center := common.IVec{X: common.ScreenWidth / 2, Y: common.ScreenHeight - 20}
		n := len(p.actions)
		for i, a := range p.actions {
			pos := center.Add(common.IVec{X: 18 * (1 - n + 2*i)})
			gr.AddSprite(ActionSprite(a), pos, graphics.LayerInterface, graphics.Normal)
			if i == p.selection {
				gr.AddSprite(graphics.SpriteSelection, pos, graphics.LayerInterface, graphics.Normal)
			}
		}
	}

	if p.dialogue > 0 {
		p.drawDialogue(gr)
	}
}

func (p *Player) drawDialogue(gr Renderer) {
	const (
		portrait = 128
		margin   = 16
		center   = common.ScreenWidth / 2
		boxLeft  = center - 256
	)
	line := p.screen.Level().Dialogue()[p.dialogue-1]
	face, color := graphics.SpriteTalkG1, girlColor
	if line.Speaker == SpeakerShadow {
		face, color = graphics.SpriteTalkS1, shadowColor
	}
	gr.AddSprite(graphics.SpriteDialog, common.IVec{X: center, Y: margin + portrait/2}, graphics.LayerInterface, graphics.Normal)
	gr.AddSprite(face, common.IVec{X: boxLeft + margin + portrait/2, Y: margin + portrait/2}, graphics.LayerInterface, graphics.Normal)
	gr.PutText(
		common.IVec{X: boxLeft + portrait + margin*2, Y: portrait + margin},
		graphics.AlignLeft, graphics.AlignTop,
		512-margin*3-portrait,
		graphics.Palette(color),
		line.Text,
	)
}
