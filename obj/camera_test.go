package obj

import (
	"math"
	"testing"

	"github.com/milk9111/dreamless/common"
)

func newTestCamera(bounds common.IRect) *Camera {
	c := &Camera{}
	c.SetBounds(bounds)
	c.SetFOV(common.IVec{X: common.ScreenWidth, Y: common.ScreenHeight})
	return c
}

func TestCameraClamp(t *testing.T) {
	c := newTestCamera(common.IRect{X1: 2000, Y1: 1000})
	cases := []struct {
		name   string
		target common.FVec
		want   common.FVec
	}{
		{"inside", common.FVec{X: 1000, Y: 500}, common.FVec{X: 1000, Y: 500}},
		{"lower left", common.FVec{X: 0, Y: 0}, common.FVec{X: 320, Y: 180}},
		{"upper right", common.FVec{X: 5000, Y: 5000}, common.FVec{X: 1680, Y: 820}},
		{"left edge", common.FVec{X: -50, Y: 600}, common.FVec{X: 320, Y: 600}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c.SetTarget(tc.target, false)
			if got := c.Target(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCameraCollapsesSmallLevel(t *testing.T) {
	c := newTestCamera(common.IRect{X1: 320, Y1: 2000})
	c.SetTarget(common.FVec{X: 0, Y: 0}, false)
	if got := c.Target(); got != (common.FVec{X: 160, Y: 180}) {
		t.Fatalf("expected x collapsed to the level center, got %v", got)
	}
	c.SetTarget(common.FVec{X: 1000, Y: 3000}, false)
	if got := c.Target(); got != (common.FVec{X: 160, Y: 1820}) {
		t.Fatalf("expected %v, got %v", common.FVec{X: 160, Y: 1820}, got)
	}
}

func TestCameraFirstUpdateSnaps(t *testing.T) {
	c := newTestCamera(common.IRect{X1: 2000, Y1: 1000})
	c.SetTarget(common.FVec{X: 1000, Y: 500}, false)
	c.Update()
	if got := c.Center(); got != (common.FVec{X: 1000, Y: 500}) {
		t.Fatalf("expected snap to target, got %v", got)
	}
	if got := c.DrawPos(0); got != (common.IVec{X: 680, Y: 320}) {
		t.Fatalf("expected lower left corner (680,320), got %v", got)
	}
}

func TestCameraSmoothing(t *testing.T) {
	c := newTestCamera(common.IRect{X1: 4000, Y1: 1000})
	c.SetTarget(common.FVec{X: 1000, Y: 500}, false)
	c.Update()
	c.SetTarget(common.FVec{X: 1784, Y: 500}, false)
	c.Update()

	// The newest sample has weight 32 out of a total of 784.
	if got := c.Center().X; math.Abs(float64(got-1032)) > 1e-3 {
		t.Fatalf("expected x=1032 after one tick, got %v", got)
	}
	prev := c.Center().X
	for i := 1; i < cameraHistory; i++ {
		c.Update()
		x := c.Center().X
		if x < prev {
			t.Fatalf("tick %d: camera moved backwards %v -> %v", i, prev, x)
		}
		prev = x
	}
	if got := c.Center().X; math.Abs(float64(got-1784)) > 1e-3 {
		t.Fatalf("expected to settle on the target after %d ticks, got %v", cameraHistory, got)
	}
}

func TestCameraOverride(t *testing.T) {
	c := newTestCamera(common.IRect{X1: 4000, Y1: 1000})
	c.SetTarget(common.FVec{X: 1000, Y: 500}, false)
	c.Update()
	c.SetTarget(common.FVec{X: 3000, Y: 9000}, true)
	c.Update()
	want := common.FVec{X: 3000, Y: 820}
	if got := c.Center(); got != want {
		t.Fatalf("expected override to jump to clamped %v, got %v", want, got)
	}

	// Once the override ends the history already holds the override target.
	c.SetTarget(want, false)
	c.Update()
	if got := c.Center(); got != want {
		t.Fatalf("expected to stay at %v, got %v", want, got)
	}
}

func TestCameraDrawPosInterpolates(t *testing.T) {
	c := newTestCamera(common.IRect{X1: 4000, Y1: 1000})
	c.SetTarget(common.FVec{X: 1000, Y: 500}, false)
	c.Update()
	c.SetTarget(common.FVec{X: 1100, Y: 500}, true)
	c.Update()
	if got := c.DrawPos(16); got.X != 1050-320 {
		t.Fatalf("expected halfway x=%d, got %d", 1050-320, got.X)
	}
}
