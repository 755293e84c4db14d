package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
)

var keyBindings = [ButtonCount][]ebiten.Key{
	ButtonLeft:      {ebiten.KeyA, ebiten.KeyArrowLeft},
	ButtonRight:     {ebiten.KeyD, ebiten.KeyArrowRight},
	ButtonUp:        {ebiten.KeyW, ebiten.KeyArrowUp},
	ButtonDown:      {ebiten.KeyS, ebiten.KeyArrowDown},
	ButtonNext:      {ebiten.KeyE, ebiten.KeyTab},
	ButtonPrev:      {ebiten.KeyQ},
	ButtonAction:    {ebiten.KeySpace},
	ButtonRestart:   {ebiten.KeyR, ebiten.KeyF5, ebiten.KeyHome},
	ButtonEscape:    {ebiten.KeyEscape},
	ButtonHelp:      {ebiten.KeyF1},
	ButtonPrevLevel: {ebiten.KeyF7, ebiten.KeyPageUp},
	ButtonNextLevel: {ebiten.KeyF8, ebiten.KeyPageDown},
}

var padBindings = map[Button][]ebiten.StandardGamepadButton{
	ButtonUp:      {ebiten.StandardGamepadButtonRightBottom},
	ButtonNext:    {ebiten.StandardGamepadButtonFrontBottomRight, ebiten.StandardGamepadButtonFrontTopRight},
	ButtonPrev:    {ebiten.StandardGamepadButtonFrontBottomLeft, ebiten.StandardGamepadButtonFrontTopLeft},
	ButtonAction:  {ebiten.StandardGamepadButtonRightRight},
	ButtonRestart: {ebiten.StandardGamepadButtonCenterLeft},
	ButtonEscape:  {ebiten.StandardGamepadButtonCenterRight},
	ButtonLeft:    {ebiten.StandardGamepadButtonLeftLeft},
	ButtonRight:   {ebiten.StandardGamepadButtonLeftRight},
	ButtonDown:    {ebiten.StandardGamepadButtonLeftBottom},
}

// stickDeadZone is how far the left stick must move to count as a press.
const stickDeadZone = 0.3

// Input samples the keyboard and the first standard gamepad into a
// ControlState.
type Input struct {
	control *ControlState
	pressed func(ebiten.Key) bool
}

// NewInput returns an Input writing into control.
func NewInput(control *ControlState) *Input {
	return &Input{control: control, pressed: ebiten.IsKeyPressed}
}

// Update polls the devices. Call once per ebiten update, before running
// simulation ticks.
func (i *Input) Update() {
	var pad [ButtonCount]bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		if ebiten.IsStandardGamepadLayoutAvailable(gid) {
			for b, buttons := range padBindings {
				for _, sb := range buttons {
					if ebiten.IsStandardGamepadButtonPressed(gid, sb) {
						pad[b] = true
					}
				}
			}
			x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
			y := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
			pad[ButtonLeft] = pad[ButtonLeft] || x < -stickDeadZone
			pad[ButtonRight] = pad[ButtonRight] || x > stickDeadZone
			pad[ButtonDown] = pad[ButtonDown] || y > stickDeadZone
		}
	}
	i.apply(pad)
}

func (i *Input) apply(pad [ButtonCount]bool) {
	for b := Button(0); b < ButtonCount; b++ {
		down := pad[b]
		for _, k := range keyBindings[b] {
			if i.pressed(k) {
				down = true
				break
			}
		}
		i.control.SetButton(b, down)
	}
}
