package graphics

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchQuads keeps every DrawTriangles call within uint16 indices.
const maxBatchQuads = 1 << 13

var quadIndices = func() []uint16 {
	is := make([]uint16, 0, maxBatchQuads*6)
	for q := 0; q < maxBatchQuads; q++ {
		b := uint16(q * 4)
		is = append(is, b, b+1, b+2, b+2, b+1, b+3)
	}
	return is
}()

// SpriteArray is a CPU-side list of sprite quads. Destination coordinates
// are stored in layer space (Y up) and converted to target pixels when the
// array is drawn.
type SpriteArray struct {
	vertices []ebiten.Vertex
	scratch  []ebiten.Vertex
}

// Clear removes all quads.
func (a *SpriteArray) Clear() {
	a.vertices = a.vertices[:0]
}

// Len returns the number of quads.
func (a *SpriteArray) Len() int {
	return len(a.vertices) / 4
}

// Add appends a sprite with its pivot at (x, y).
func (a *SpriteArray) Add(r SpriteRect, x, y int, o Orientation) {
	vx, vy := quadCorners(r, x, y, o)
	tx0, tx1 := float32(r.X), float32(r.X+r.W)
	ty0, ty1 := float32(r.Y+r.H), float32(r.Y)
	src := [4][2]float32{{tx0, ty0}, {tx1, ty0}, {tx0, ty1}, {tx1, ty1}}
	for i := 0; i < 4; i++ {
		a.vertices = append(a.vertices, ebiten.Vertex{
			DstX:   float32(vx[i]),
			DstY:   float32(vy[i]),
			SrcX:   src[i][0],
			SrcY:   src[i][1],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
}

// quadCorners returns the layer-space corners of a sprite in the order
// lower left, lower right, upper left, upper right of the source image.
func quadCorners(r SpriteRect, x, y int, o Orientation) (vx, vy [4]int) {
	rx0, rx1 := -r.CX, r.W-r.CX
	ry0, ry1 := -r.CY, r.H-r.CY
	switch o {
	case Normal:
		vx[0], vx[2] = x+rx0, x+rx0
		vx[1], vx[3] = x+rx1, x+rx1
		vy[0], vy[1] = y+ry0, y+ry0
		vy[2], vy[3] = y+ry1, y+ry1
	case Rotate90:
		vx[2], vx[3] = x+ry0, x+ry0
		vx[0], vx[1] = x+ry1, x+ry1
		vy[2], vy[0] = y+rx0, y+rx0
		vy[3], vy[1] = y+rx1, y+rx1
	case Rotate180:
		vx[3], vx[1] = x+rx0, x+rx0
		vx[2], vx[0] = x+rx1, x+rx1
		vy[3], vy[2] = y+ry0, y+ry0
		vy[1], vy[0] = y+ry1, y+ry1
	case Rotate270:
		vx[1], vx[0] = x+ry0, x+ry0
		vx[3], vx[2] = x+ry1, x+ry1
		vy[1], vy[3] = y+rx0, y+rx0
		vy[0], vy[2] = y+rx1, y+rx1
	case FlipVertical:
		vx[0], vx[2] = x+rx0, x+rx0
		vx[1], vx[3] = x+rx1, x+rx1
		vy[0], vy[1] = y+ry1, y+ry1
		vy[2], vy[3] = y+ry0, y+ry0
	case Transpose2:
		vx[2], vx[3] = x+ry0, x+ry0
		vx[0], vx[1] = x+ry1, x+ry1
		vy[2], vy[0] = y+rx1, y+rx1
		vy[3], vy[1] = y+rx0, y+rx0
	case FlipHorizontal:
		vx[3], vx[1] = x+rx0, x+rx0
		vx[2], vx[0] = x+rx1, x+rx1
		vy[3], vy[2] = y+ry1, y+ry1
		vy[1], vy[0] = y+ry0, y+ry0
	case Transpose:
		vx[1], vx[0] = x+ry0, x+ry0
		vx[3], vx[2] = x+ry1, x+ry1
		vy[1], vy[3] = y+rx1, y+rx1
		vy[0], vy[2] = y+rx0, y+rx0
	default:
		panic("graphics: invalid orientation")
	}
	return vx, vy
}

// project converts the layer-space vertices into target pixels. origin is
// the layer-space point drawn at the lower left of a target height pixels
// tall.
func (a *SpriteArray) project(origin image.Point, height int) []ebiten.Vertex {
	a.scratch = append(a.scratch[:0], a.vertices...)
	ox, oy, h := float32(origin.X), float32(origin.Y), float32(height)
	for i := range a.scratch {
		v := &a.scratch[i]
		v.DstX -= ox
		v.DstY = h - (v.DstY - oy)
	}
	return a.scratch
}

// Draw renders every quad onto dst using the sheet texture.
func (a *SpriteArray) Draw(dst, sheet *ebiten.Image, origin image.Point) {
	if len(a.vertices) == 0 {
		return
	}
	vs := a.project(origin, dst.Bounds().Dy())
	op := &ebiten.DrawTrianglesOptions{}
	op.Filter = ebiten.FilterNearest
	for start := 0; start < len(vs); start += maxBatchQuads * 4 {
		end := min(start+maxBatchQuads*4, len(vs))
		n := (end - start) / 4
		dst.DrawTriangles(vs[start:end], quadIndices[:n*6], sheet, op)
	}
}
