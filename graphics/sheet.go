package graphics

import (
	"image"
	"image/color"
	"image/draw"
)

const sheetWidth = 512

type spriteDef struct {
	w, h   int
	cx, cy int
	paint  func(img *image.RGBA, r image.Rectangle)
}

var spriteDefs = [SpriteCount]spriteDef{
	SpriteActionDrop:     {16, 16, 8, 8, paintAction(actionDrop)},
	SpriteActionJump:     {16, 16, 8, 8, paintAction(actionJump)},
	SpriteActionJumpBack: {16, 16, 8, 8, paintAction(actionJumpBack)},
	SpriteActionTurn:     {16, 16, 8, 8, paintAction(actionTurn)},
	SpriteAdversary:      {24, 40, 12, 16, paintAdversary},
	SpriteDialog:         {512, 144, 256, 72, paintDialog},
	SpriteDoorClosed:     {24, 40, 12, 16, paintDoor(false, false)},
	SpriteDoorLocked:     {24, 40, 12, 16, paintDoor(false, true)},
	SpriteDoorOpen:       {24, 40, 12, 16, paintDoor(true, false)},
	SpriteGirl:           {16, 28, 8, 14, paintGirl},
	SpriteKey:            {12, 8, 6, 4, paintKey},
	SpriteKnight1:        {20, 30, 10, 14, paintKnight},
	SpritePortal:         {24, 40, 12, 16, paintPortal},
	SpriteSelection:      {20, 20, 10, 10, paintSelection},
	SpriteTalkG1:         {128, 128, 64, 64, paintPortrait(20)},
	SpriteTalkS1:         {128, 128, 64, 64, paintPortrait(28)},

	TileNone:  {32, 32, 0, 0, nil},
	TileReal1: {32, 32, 0, 0, paintBlock(8, 9)},
	TileReal2: {32, 32, 0, 0, paintBlock(4, 5)},
	TileReal3: {32, 32, 0, 0, paintBlock(12, 13)},
	TileReal4: {32, 32, 0, 0, paintBlock(1, 3)},
	TileReal5: {32, 32, 0, 0, paintRamp(0.5, 0)},
	TileReal6: {32, 32, 0, 0, paintRamp(0.5, 16)},
	TileReal7: {32, 32, 0, 0, paintRamp(-0.5, 32)},
	TileReal8: {32, 32, 0, 0, paintRamp(-0.5, 16)},
}

// BuildSheet paints every sprite into a single RGBA image using shelf
// packing and returns the image together with each sprite's rectangle.
func BuildSheet() (*image.RGBA, [SpriteCount]SpriteRect) {
	var rects [SpriteCount]SpriteRect
	x, y, shelf := 0, 0, 0
	for i, d := range spriteDefs {
		if x+d.w > sheetWidth {
			x = 0
			y += shelf
			shelf = 0
		}
		rects[i] = SpriteRect{X: x, Y: y, W: d.w, H: d.h, CX: d.cx, CY: d.cy}
		x += d.w
		if d.h > shelf {
			shelf = d.h
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, sheetWidth, nextPow2(y+shelf)))
	for i, d := range spriteDefs {
		if d.paint == nil {
			continue
		}
		r := rects[i]
		d.paint(img, image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H))
	}
	return img, rects
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func frame(img *image.RGBA, r image.Rectangle, c color.Color) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func ellipse(img *image.RGBA, r image.Rectangle, c color.Color) {
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			dx := (float64(px) + 0.5 - cx) / rx
			dy := (float64(py) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				img.Set(px, py, c)
			}
		}
	}
}

func paintBlock(base, edge int) func(*image.RGBA, image.Rectangle) {
	return func(img *image.RGBA, r image.Rectangle) {
		fill(img, r, Palette(base))
		fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+3), Palette(edge))
		// mortar lines, offset on alternate courses
		for row := 0; row < 4; row++ {
			y := r.Min.Y + 3 + row*8
			fill(img, image.Rect(r.Min.X, y, r.Max.X, y+1), Palette(base-1))
			off := (row % 2) * 8
			for x := r.Min.X + off; x < r.Max.X; x += 16 {
				fill(img, image.Rect(x, y, x+1, min(y+8, r.Max.Y)), Palette(base-1))
			}
		}
	}
}

// paintRamp fills every pixel below the line y = slope*x + offset, measured
// from the bottom of the tile.
func paintRamp(slope, offset float64) func(*image.RGBA, image.Rectangle) {
	return func(img *image.RGBA, r image.Rectangle) {
		h := r.Dy()
		for py := 0; py < h; py++ {
			for px := 0; px < r.Dx(); px++ {
				height := slope*(float64(px)+0.5) + offset
				y := float64(h-1-py) + 0.5
				switch {
				case y < height-3:
					img.Set(r.Min.X+px, r.Min.Y+py, Palette(8))
				case y < height:
					img.Set(r.Min.X+px, r.Min.Y+py, Palette(9))
				}
			}
		}
	}
}

func paintGirl(img *image.RGBA, r image.Rectangle) {
	// hair, face, dress, legs
	ellipse(img, image.Rect(r.Min.X+3, r.Min.Y, r.Min.X+13, r.Min.Y+10), Palette(10))
	ellipse(img, image.Rect(r.Min.X+4, r.Min.Y+2, r.Min.X+12, r.Min.Y+10), Palette(19))
	fill(img, image.Rect(r.Min.X+9, r.Min.Y+5, r.Min.X+10, r.Min.Y+6), Palette(0))
	fill(img, image.Rect(r.Min.X+3, r.Min.Y+10, r.Min.X+13, r.Min.Y+22), Palette(20))
	fill(img, image.Rect(r.Min.X+5, r.Min.Y+22, r.Min.X+7, r.Max.Y), Palette(19))
	fill(img, image.Rect(r.Min.X+9, r.Min.Y+22, r.Min.X+11, r.Max.Y), Palette(19))
}

func paintKnight(img *image.RGBA, r image.Rectangle) {
	fill(img, image.Rect(r.Min.X+5, r.Min.Y, r.Min.X+15, r.Min.Y+10), Palette(7))
	fill(img, image.Rect(r.Min.X+11, r.Min.Y+4, r.Min.X+15, r.Min.Y+5), Palette(0))
	fill(img, image.Rect(r.Min.X+3, r.Min.Y+10, r.Min.X+17, r.Min.Y+22), Palette(6))
	frame(img, image.Rect(r.Min.X+3, r.Min.Y+10, r.Min.X+17, r.Min.Y+22), Palette(5))
	fill(img, image.Rect(r.Min.X+5, r.Min.Y+22, r.Min.X+8, r.Max.Y), Palette(5))
	fill(img, image.Rect(r.Min.X+12, r.Min.Y+22, r.Min.X+15, r.Max.Y), Palette(5))
}

func paintKey(img *image.RGBA, r image.Rectangle) {
	ellipse(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+6, r.Max.Y), Palette(21))
	fill(img, image.Rect(r.Min.X+5, r.Min.Y+3, r.Max.X, r.Min.Y+5), Palette(21))
	fill(img, image.Rect(r.Max.X-3, r.Min.Y+5, r.Max.X-2, r.Max.Y), Palette(22))
	fill(img, image.Rect(r.Max.X-1, r.Min.Y+5, r.Max.X, r.Max.Y-1), Palette(22))
}

func paintDoor(open, locked bool) func(*image.RGBA, image.Rectangle) {
	return func(img *image.RGBA, r image.Rectangle) {
		fill(img, r, Palette(8))
		inner := image.Rect(r.Min.X+3, r.Min.Y+3, r.Max.X-3, r.Max.Y)
		if open {
			fill(img, inner, Palette(0))
			return
		}
		fill(img, inner, Palette(10))
		fill(img, image.Rect(inner.Max.X-5, inner.Min.Y+18, inner.Max.X-3, inner.Min.Y+20), Palette(21))
		if locked {
			fill(img, image.Rect(inner.Min.X+5, inner.Min.Y+14, inner.Max.X-5, inner.Min.Y+24), Palette(22))
			fill(img, image.Rect(inner.Min.X+8, inner.Min.Y+17, inner.Max.X-8, inner.Min.Y+21), Palette(0))
		}
	}
}

func paintPortal(img *image.RGBA, r image.Rectangle) {
	ellipse(img, r, Palette(2))
	ellipse(img, r.Inset(3), Palette(28))
	ellipse(img, r.Inset(7), Palette(27))
}

func paintAdversary(img *image.RGBA, r image.Rectangle) {
	ellipse(img, image.Rect(r.Min.X+2, r.Min.Y, r.Max.X-2, r.Min.Y+18), Palette(1))
	fill(img, image.Rect(r.Min.X+2, r.Min.Y+10, r.Max.X-2, r.Max.Y), Palette(1))
	for x := r.Min.X + 2; x < r.Max.X-2; x += 4 {
		draw.Draw(img, image.Rect(x, r.Max.Y-3, x+2, r.Max.Y), image.Transparent, image.Point{}, draw.Src)
	}
	fill(img, image.Rect(r.Min.X+7, r.Min.Y+7, r.Min.X+10, r.Min.Y+9), Palette(16))
	fill(img, image.Rect(r.Max.X-10, r.Min.Y+7, r.Max.X-7, r.Min.Y+9), Palette(16))
}

func paintSelection(img *image.RGBA, r image.Rectangle) {
	frame(img, r, Palette(31))
	frame(img, r.Inset(1), Palette(21))
}

type actionGlyph int

const (
	actionDrop actionGlyph = iota
	actionJump
	actionJumpBack
	actionTurn
)

func paintAction(glyph actionGlyph) func(*image.RGBA, image.Rectangle) {
	return func(img *image.RGBA, r image.Rectangle) {
		fill(img, r.Inset(1), Palette(3))
		frame(img, r.Inset(1), Palette(27))
		c := Palette(31)
		m := r.Min
		switch glyph {
		case actionJump:
			fill(img, image.Rect(m.X+7, m.Y+5, m.X+9, m.Y+12), c)
			fill(img, image.Rect(m.X+5, m.Y+6, m.X+11, m.Y+7), c)
			fill(img, image.Rect(m.X+6, m.Y+5, m.X+10, m.Y+6), c)
		case actionJumpBack:
			fill(img, image.Rect(m.X+5, m.Y+5, m.X+11, m.Y+7), c)
			fill(img, image.Rect(m.X+5, m.Y+5, m.X+7, m.Y+12), c)
			fill(img, image.Rect(m.X+4, m.Y+10, m.X+8, m.Y+11), c)
		case actionTurn:
			fill(img, image.Rect(m.X+4, m.Y+7, m.X+12, m.Y+9), c)
			fill(img, image.Rect(m.X+4, m.Y+5, m.X+6, m.Y+11), c)
			fill(img, image.Rect(m.X+10, m.Y+5, m.X+12, m.Y+11), c)
		case actionDrop:
			fill(img, image.Rect(m.X+7, m.Y+4, m.X+9, m.Y+10), c)
			fill(img, image.Rect(m.X+5, m.Y+9, m.X+11, m.Y+10), c)
			fill(img, image.Rect(m.X+4, m.Y+11, m.X+12, m.Y+12), c)
		}
	}
}

func paintDialog(img *image.RGBA, r image.Rectangle) {
	bg := Palette(1)
	bg.A = 0xe0
	// premultiply for the ebiten blend
	bg.R = uint8(uint16(bg.R) * uint16(bg.A) / 0xff)
	bg.G = uint8(uint16(bg.G) * uint16(bg.A) / 0xff)
	bg.B = uint8(uint16(bg.B) * uint16(bg.A) / 0xff)
	draw.Draw(img, r, image.NewUniform(bg), image.Point{}, draw.Src)
	frame(img, r, Palette(27))
	frame(img, r.Inset(2), Palette(2))
}

func paintPortrait(accent int) func(*image.RGBA, image.Rectangle) {
	return func(img *image.RGBA, r image.Rectangle) {
		fill(img, r, Palette(4))
		frame(img, r, Palette(accent))
		ellipse(img, image.Rect(r.Min.X+24, r.Min.Y+16, r.Max.X-24, r.Min.Y+96), Palette(accent))
		ellipse(img, image.Rect(r.Min.X+34, r.Min.Y+30, r.Max.X-34, r.Min.Y+90), Palette(19))
		fill(img, image.Rect(r.Min.X+50, r.Min.Y+56, r.Min.X+56, r.Min.Y+62), Palette(0))
		fill(img, image.Rect(r.Max.X-56, r.Min.Y+56, r.Max.X-50, r.Min.Y+62), Palette(0))
		fill(img, image.Rect(r.Min.X+28, r.Min.Y+96, r.Max.X-28, r.Max.Y-1), Palette(accent))
	}
}
