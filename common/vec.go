package common

import "math"

// FVec is a world position or displacement. Y points up.
type FVec struct {
	X, Y float32
}

func (v FVec) Add(o FVec) FVec {
	return FVec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v FVec) Sub(o FVec) FVec {
	return FVec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v FVec) Scale(s float32) FVec {
	return FVec{X: v.X * s, Y: v.Y * s}
}

// IVec converts to integer coordinates, rounding toward negative infinity.
func (v FVec) IVec() IVec {
	return IVec{X: int(math.Floor(float64(v.X))), Y: int(math.Floor(float64(v.Y)))}
}

// IVec is an integer pixel or tile coordinate.
type IVec struct {
	X, Y int
}

func (v IVec) Add(o IVec) IVec {
	return IVec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v IVec) Sub(o IVec) IVec {
	return IVec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v IVec) FVec() FVec {
	return FVec{X: float32(v.X), Y: float32(v.Y)}
}

// IRect is a half-open integer rectangle [X0,X1)×[Y0,Y1).
type IRect struct {
	X0, Y0, X1, Y1 int
}

// Centered returns a w×h rectangle centered on the origin.
func Centered(w, h int) IRect {
	return IRect{X0: -(w / 2), Y0: -(h / 2), X1: w - w/2, Y1: h - h/2}
}

func (r IRect) Width() int  { return r.X1 - r.X0 }
func (r IRect) Height() int { return r.Y1 - r.Y0 }

// Offset translates the rectangle by v.
func (r IRect) Offset(v IVec) IRect {
	return IRect{X0: r.X0 + v.X, Y0: r.Y0 + v.Y, X1: r.X1 + v.X, Y1: r.Y1 + v.Y}
}

// Contains reports whether v lies inside the rectangle.
func (r IRect) Contains(v IVec) bool {
	return r.X0 <= v.X && v.X < r.X1 && r.Y0 <= v.Y && v.Y < r.Y1
}
