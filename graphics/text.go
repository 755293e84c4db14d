package graphics

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/dreamless/common"
)

const textLineSpacing = 15

type textItem struct {
	pos    common.IVec
	halign HAlign
	valign VAlign
	width  int
	color  color.Color
	lines  string
}

var defaultFace text.Face = text.NewGoXFace(basicfont.Face7x13)

// wrapText breaks s into lines no wider than width using greedy word
// wrapping. Words wider than width get a line of their own.
func wrapText(s string, width int, advance func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if width > 0 && advance(candidate) > float64(width) {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

func (h HAlign) textAlign() text.Align {
	switch h {
	case AlignCenter:
		return text.AlignCenter
	case AlignRight:
		return text.AlignEnd
	}
	return text.AlignStart
}

func (v VAlign) textAlign() text.Align {
	switch v {
	case AlignMiddle:
		return text.AlignCenter
	case AlignBottom:
		return text.AlignEnd
	}
	return text.AlignStart
}

func drawTextItem(dst *ebiten.Image, face text.Face, it textItem, l targetLayout) {
	op := &text.DrawOptions{}
	x := float64(it.pos.X + l.TexPos.X)
	y := float64(l.TexHeight - (it.pos.Y + l.TexPos.Y))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(it.color)
	op.LineSpacing = textLineSpacing
	op.PrimaryAlign = it.halign.textAlign()
	op.SecondaryAlign = it.valign.textAlign()
	text.Draw(dst, it.lines, face, op)
}
