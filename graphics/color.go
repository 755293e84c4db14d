package graphics

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// palette is the fixed 32 color table used for text, the dream blend and
// the procedural sprite sheet.
var palette = [32]color.RGBA{
	colornames.Black,
	colornames.Midnightblue,
	colornames.Mediumpurple,
	colornames.Slateblue,
	colornames.Darkslategray,
	colornames.Dimgray,
	colornames.Gray,
	colornames.Silver,
	colornames.Saddlebrown,
	colornames.Sienna,
	colornames.Peru,
	colornames.Burlywood,
	colornames.Darkolivegreen,
	colornames.Olivedrab,
	colornames.Yellowgreen,
	colornames.Palegreen,
	colornames.Darkred,
	colornames.Firebrick,
	colornames.Indianred,
	colornames.Salmon,
	colornames.Lightpink,
	colornames.Gold,
	colornames.Goldenrod,
	colornames.Khaki,
	colornames.Teal,
	colornames.Cadetblue,
	colornames.Skyblue,
	colornames.Lavender,
	colornames.Orchid,
	colornames.Plum,
	colornames.Whitesmoke,
	colornames.White,
}

// Palette returns entry n of the palette. Out of range indexes wrap.
func Palette(n int) color.RGBA {
	n %= len(palette)
	if n < 0 {
		n += len(palette)
	}
	return palette[n]
}

// Transparent is the zero color.
var Transparent = color.RGBA{}

// premultiplied returns the color as premultiplied float components.
func premultiplied(c color.Color) [4]float32 {
	r, g, b, a := c.RGBA()
	return [4]float32{
		float32(r) / 0xffff,
		float32(g) / 0xffff,
		float32(b) / 0xffff,
		float32(a) / 0xffff,
	}
}
