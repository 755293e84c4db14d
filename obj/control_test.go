package obj

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/dreamless/common"
)

func TestControlEdges(t *testing.T) {
	var c ControlState
	c.SetButton(ButtonAction, true)
	if !c.Button(ButtonAction) || !c.ButtonInstant(ButtonAction) {
		t.Fatal("expected fresh press to be down and instant")
	}
	if !c.AnyButtonInstant() {
		t.Fatal("expected AnyButtonInstant")
	}
	c.Update()
	if !c.Button(ButtonAction) || c.ButtonInstant(ButtonAction) {
		t.Fatal("expected held button to stay down without an edge")
	}
	c.SetButton(ButtonAction, true)
	if c.ButtonInstant(ButtonAction) {
		t.Fatal("holding a button must not create a new edge")
	}
	c.SetButton(ButtonAction, false)
	if c.Button(ButtonAction) {
		t.Fatal("expected released button to be up")
	}
	c.SetButton(ButtonAction, true)
	if !c.ButtonInstant(ButtonAction) {
		t.Fatal("expected a new edge after release")
	}
	c.Clear()
	if c.Button(ButtonAction) || c.AnyButtonInstant() {
		t.Fatal("expected Clear to release everything")
	}
}

func TestControlGet2D(t *testing.T) {
	cases := []struct {
		name    string
		buttons []Button
		want    common.FVec
	}{
		{"none", nil, common.FVec{}},
		{"left", []Button{ButtonLeft}, common.FVec{X: -1}},
		{"right up", []Button{ButtonRight, ButtonUp}, common.FVec{X: 1, Y: 1}},
		{"down", []Button{ButtonDown}, common.FVec{Y: -1}},
		{"opposed", []Button{ButtonLeft, ButtonRight}, common.FVec{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c ControlState
			for _, b := range tc.buttons {
				c.SetButton(b, true)
			}
			if got := c.Get2D(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestControlUnknownButtonPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	var c ControlState
	c.Button(ButtonCount)
}

func TestInputApply(t *testing.T) {
	var c ControlState
	keys := map[ebiten.Key]bool{}
	in := &Input{control: &c, pressed: func(k ebiten.Key) bool { return keys[k] }}

	keys[ebiten.KeyArrowLeft] = true
	keys[ebiten.KeySpace] = true
	in.apply([ButtonCount]bool{})
	if !c.Button(ButtonLeft) || !c.ButtonInstant(ButtonAction) {
		t.Fatal("expected left and action from the keyboard")
	}
	c.Update()

	keys = map[ebiten.Key]bool{}
	var pad [ButtonCount]bool
	pad[ButtonAction] = true
	in.apply(pad)
	if c.Button(ButtonLeft) {
		t.Fatal("expected left released")
	}
	if !c.Button(ButtonAction) || c.ButtonInstant(ButtonAction) {
		t.Fatal("gamepad should keep action held without a new edge")
	}

	keys[ebiten.KeyR] = true
	in.apply([ButtonCount]bool{})
	if !c.ButtonInstant(ButtonRestart) {
		t.Fatal("expected restart edge")
	}
}
