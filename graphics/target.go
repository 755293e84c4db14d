package graphics

import (
	"image"
	"math"
)

// TargetMargin is the padding kept around the visible area of the
// offscreen targets.
const TargetMargin = 64

// targetLayout describes the offscreen targets for a given screen size.
type targetLayout struct {
	// Width and Height are the visible area, half the screen size.
	Width, Height int
	// TexWidth and TexHeight are the allocated target size.
	TexWidth, TexHeight int
	// TexPos is the lower left corner of the visible area in the target.
	TexPos image.Point
	// BlendScale holds the visible center in normalized target coordinates
	// followed by the factor that maps the center-to-corner distance to 1.
	BlendScale [4]float32
}

// layoutTargets computes the layout for a screen of screenW×screenH pixels.
// The current allocation is kept unless the padded visible area no longer
// fits in it.
func layoutTargets(screenW, screenH, curW, curH int) targetLayout {
	l := targetLayout{
		Width:     screenW / 2,
		Height:    screenH / 2,
		TexWidth:  curW,
		TexHeight: curH,
	}
	if l.Width+TargetMargin*2 > curW || l.Height+TargetMargin*2 > curH {
		l.TexWidth = nextPow2(l.Width + TargetMargin*2)
		l.TexHeight = nextPow2(l.Height + TargetMargin*2)
	}
	l.TexPos = image.Pt((l.TexWidth-l.Width)/2, (l.TexHeight-l.Height)/2)

	xs := 1 / float32(l.TexWidth)
	ys := 1 / float32(l.TexHeight)
	x := 0.5 * xs * float32(l.Width)
	y := 0.5 * ys * float32(l.Height)
	sc := float32(math.Sqrt(float64(1 / (x*x + y*y))))
	l.BlendScale = [4]float32{
		float32(l.TexPos.X)*xs + x,
		float32(l.TexPos.Y)*ys + y,
		sc,
		sc,
	}
	return l
}

// Grew reports whether the layout needs new targets compared to the
// allocation curW×curH.
func (l targetLayout) Grew(curW, curH int) bool {
	return l.TexWidth != curW || l.TexHeight != curH
}

// Visible returns the visible area in target pixels (Y down).
func (l targetLayout) Visible() image.Rectangle {
	top := l.TexHeight - l.TexPos.Y - l.Height
	return image.Rect(l.TexPos.X, top, l.TexPos.X+l.Width, top+l.Height)
}
