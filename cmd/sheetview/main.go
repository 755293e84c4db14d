package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/dreamless/graphics"
)

const viewSize = 512

// viewer steps through every sprite of the generated sheet.
type viewer struct {
	sheet       *ebiten.Image
	rects       [graphics.SpriteCount]graphics.SpriteRect
	current     graphics.Sprite
	tick        int
	ticksPerFrm int
}

func (g *viewer) Update() error {
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current++
		if g.current >= graphics.SpriteCount {
			g.current = 0
		}
	}
	return nil
}

func (g *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	r := g.rects[g.current]
	if r.W > 0 && r.H > 0 {
		sub := g.sheet.SubImage(image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)).(*ebiten.Image)
		scale := float64(viewSize/2) / float64(max(r.W, r.H))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate((viewSize-float64(r.W)*scale)/2, (viewSize-float64(r.H)*scale)/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(sub, op)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %dx%d  pivot (%d, %d)", g.current, r.W, r.H, r.CX, r.CY))
}

func (g *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func writeSheet(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func main() {
	out := flag.String("out", "", "write the sprite sheet to this PNG file and exit")
	fps := flag.Int("fps", 1, "sprites shown per second")
	flag.Parse()

	img, rects := graphics.BuildSheet()
	if *out != "" {
		if err := writeSheet(*out, img); err != nil {
			log.Fatalf("sheetview: %v", err)
		}
		return
	}

	ticks := 60
	if *fps > 0 {
		ticks = max(1, 60 / *fps)
	}
	g := &viewer{sheet: ebiten.NewImageFromImage(img), rects: rects, ticksPerFrm: ticks}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Dreamless Sprites")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
