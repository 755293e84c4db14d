package obj

import (
	"fmt"

	"github.com/milk9111/dreamless/common"
)

// Button is a logical game button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonNext
	ButtonPrev
	ButtonAction
	ButtonRestart
	ButtonEscape
	ButtonHelp
	ButtonPrevLevel
	ButtonNextLevel

	ButtonCount
)

const (
	buttonUp = iota
	buttonPressed
	buttonHeld
)

// ControlState tracks which buttons are down and which were pressed since
// the last tick.
type ControlState struct {
	buttons [ButtonCount]uint8
}

func checkButton(b Button) {
	if b < 0 || b >= ButtonCount {
		panic(fmt.Sprintf("obj: unknown button %d", b))
	}
}

// Clear releases every button.
func (c *ControlState) Clear() {
	c.buttons = [ButtonCount]uint8{}
}

// Update ages fresh presses into held buttons. Call once after each tick.
func (c *ControlState) Update() {
	for i, s := range c.buttons {
		if s == buttonPressed {
			c.buttons[i] = buttonHeld
		}
	}
}

// Button reports whether b is down.
func (c *ControlState) Button(b Button) bool {
	checkButton(b)
	return c.buttons[b] != buttonUp
}

// ButtonInstant reports whether b was pressed since the last tick.
func (c *ControlState) ButtonInstant(b Button) bool {
	checkButton(b)
	return c.buttons[b] == buttonPressed
}

// AnyButtonInstant reports whether any button was pressed since the last
// tick.
func (c *ControlState) AnyButtonInstant() bool {
	for _, s := range c.buttons {
		if s == buttonPressed {
			return true
		}
	}
	return false
}

// SetButton records the current state of b.
func (c *ControlState) SetButton(b Button, down bool) {
	checkButton(b)
	if !down {
		c.buttons[b] = buttonUp
		return
	}
	if c.buttons[b] == buttonUp {
		c.buttons[b] = buttonPressed
	}
}

// Get2D returns the directional buttons as an axis pair, each in [-1,1].
// Y is positive for up.
func (c *ControlState) Get2D() common.FVec {
	return common.FVec{
		X: c.axis(ButtonLeft, ButtonRight),
		Y: c.axis(ButtonDown, ButtonUp),
	}
}

func (c *ControlState) axis(neg, pos Button) float32 {
	var v float32
	if c.Button(neg) {
		v--
	}
	if c.Button(pos) {
		v++
	}
	return v
}
