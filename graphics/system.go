package graphics

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/dreamless/assets"
	"github.com/milk9111/dreamless/common"
)

// blendColor is the palette entry tinting the dream world.
const blendColor = 2

// System accumulates sprites for one frame and composites the physical and
// dream worlds onto the screen.
type System struct {
	sheet  *ebiten.Image
	rects  [SpriteCount]SpriteRect
	arrays [LayerCount]SpriteArray
	text   []textItem
	face   text.Face

	dreamShader *ebiten.Shader
	scaleShader *ebiten.Shader

	physical  *ebiten.Image
	composite *ebiten.Image
	noise     *ebiten.Image
	pattern   *ebiten.Image
	layout    targetLayout
	noiseSeed int64

	width, height int
	camera        common.IVec
	world         float32
	noiseOffset   [4]float32
	blendColor    [4]float32
}

// NewSystem builds the sprite sheet and compiles the compositing shaders.
func NewSystem() (*System, error) {
	dream, err := loadShader("dream.kage")
	if err != nil {
		return nil, err
	}
	scale, err := loadShader("scale.kage")
	if err != nil {
		return nil, err
	}
	sheet, rects := loadSheet()
	return &System{
		sheet:       sheet,
		rects:       rects,
		face:        defaultFace,
		dreamShader: dream,
		scaleShader: scale,
		noiseSeed:   time.Now().UnixNano(),
		width:       common.ScreenWidth * 2,
		height:      common.ScreenHeight * 2,
		world:       0.5,
		blendColor:  premultiplied(Palette(blendColor)),
	}, nil
}

// SheetFile is an optional drawn sprite sheet. It must use the layout
// BuildSheet produces; cmd/sheetview -out writes a starting point.
const SheetFile = "sprites.png"

func loadSheet() (*ebiten.Image, [SpriteCount]SpriteRect) {
	built, rects := BuildSheet()
	if assets.Exists(SheetFile) {
		img, err := assets.LoadImage(SheetFile)
		if err == nil {
			err = checkSheetSize(img.Bounds(), built.Bounds())
		}
		if err == nil {
			return img, rects
		}
		log.Printf("%s: %v, using generated sprites", SheetFile, err)
	}
	return ebiten.NewImageFromImage(built), rects
}

func checkSheetSize(got, want image.Rectangle) error {
	if got.Dx() < want.Dx() || got.Dy() < want.Dy() {
		return fmt.Errorf("graphics: sheet is %dx%d, need at least %dx%d", got.Dx(), got.Dy(), want.Dx(), want.Dy())
	}
	return nil
}

func loadShader(name string) (*ebiten.Shader, error) {
	src, err := assets.LoadFile(name)
	if err != nil {
		return nil, fmt.Errorf("graphics: load shader %s: %w", name, err)
	}
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("graphics: compile shader %s: %w", name, err)
	}
	return sh, nil
}

// AddSprite queues a sprite with its pivot at pos. World layers use world
// coordinates and the interface layer uses screen coordinates, both with Y
// pointing up.
func (s *System) AddSprite(sp Sprite, pos common.IVec, layer Layer, o Orientation) {
	if layer < 0 || layer >= LayerCount {
		panic(fmt.Sprintf("graphics: invalid layer %d", layer))
	}
	s.arrays[layer].Add(s.rects[sp], pos.X, pos.Y, o)
}

// PutText queues a block of text on the interface, wrapped to width pixels.
func (s *System) PutText(pos common.IVec, h HAlign, v VAlign, width int, c color.Color, str string) {
	adv := func(line string) float64 { return text.Advance(line, s.face) }
	lines := strings.Join(wrapText(str, width, adv), "\n")
	s.text = append(s.text, textItem{pos: pos, halign: h, valign: v, width: width, color: c, lines: lines})
}

// SetCamera sets the world position drawn at the lower left of the screen.
func (s *System) SetCamera(pos common.IVec) {
	s.camera = pos
}

// SetWorld sets the dream blend, 0 for the physical world and 1 for the
// dream world.
func (s *System) SetWorld(world float32) {
	s.world = world
}

// SetNoise sets the offsets of the two noise samples used by the blend.
func (s *System) SetNoise(noise [4]float32) {
	s.noiseOffset = noise
}

// Clear empties the sprite layers. The tile layer is only cleared when all
// is set, so static level geometry can be queued once.
func (s *System) Clear(all bool) {
	if all {
		s.arrays[LayerTile].Clear()
	}
	for l := LayerPhysical; l < LayerCount; l++ {
		s.arrays[l].Clear()
	}
	s.text = s.text[:0]
}

// SetSize sets the screen size in pixels.
func (s *System) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Finalize recomputes the target layout for the current screen size,
// allocating new targets only when the current ones are too small.
func (s *System) Finalize() {
	var curW, curH int
	if s.physical != nil {
		b := s.physical.Bounds()
		curW, curH = b.Dx(), b.Dy()
	}
	l := layoutTargets(s.width, s.height, curW, curH)
	if l.Grew(curW, curH) {
		s.allocate(l.TexWidth, l.TexHeight)
	}
	s.layout = l
}

func (s *System) allocate(w, h int) {
	for _, img := range []*ebiten.Image{s.physical, s.composite, s.noise, s.pattern} {
		if img != nil {
			img.Deallocate()
		}
	}
	s.physical = ebiten.NewImage(w, h)
	s.composite = ebiten.NewImage(w, h)
	s.noise = ebiten.NewImageFromImage(noiseImage(w, h, s.noiseSeed))
	s.pattern = ebiten.NewImageFromImage(patternImage(w, h))
}

// Draw renders the queued layers and scales the result onto screen.
func (s *System) Draw(screen *ebiten.Image) {
	if s.physical == nil {
		s.Finalize()
	}
	l := s.layout
	world := image.Pt(s.camera.X-l.TexPos.X, s.camera.Y-l.TexPos.Y)
	iface := image.Pt(-l.TexPos.X, -l.TexPos.Y)

	s.physical.Clear()
	s.arrays[LayerTile].Draw(s.physical, s.sheet, world)
	s.arrays[LayerPhysical].Draw(s.physical, s.sheet, world)

	s.composite.Clear()
	s.drawReality()
	s.arrays[LayerDream].Draw(s.composite, s.sheet, world)
	s.arrays[LayerBoth].Draw(s.composite, s.sheet, world)
	s.arrays[LayerInterface].Draw(s.composite, s.sheet, iface)
	for _, it := range s.text {
		drawTextItem(s.composite, s.face, it, l)
	}

	s.drawScaled(screen)
}

func (s *System) drawReality() {
	l := s.layout
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = s.physical
	op.Images[1] = s.noise
	op.Uniforms = map[string]any{
		"World":       s.world,
		"BlendColor":  s.blendColor[:],
		"BlendScale":  l.BlendScale[:],
		"NoiseOffset": s.noiseOffset[:],
		"TargetSize":  []float32{float32(l.TexWidth), float32(l.TexHeight)},
		"NoiseTile":   float32(noiseTile),
	}
	s.composite.DrawRectShader(l.TexWidth, l.TexHeight, s.dreamShader, op)
}

func (s *System) drawScaled(screen *ebiten.Image) {
	vis := s.layout.Visible()
	sb := screen.Bounds()
	vs := []ebiten.Vertex{
		scaleVertex(sb.Min.X, sb.Max.Y, vis.Min.X, vis.Max.Y),
		scaleVertex(sb.Max.X, sb.Max.Y, vis.Max.X, vis.Max.Y),
		scaleVertex(sb.Min.X, sb.Min.Y, vis.Min.X, vis.Min.Y),
		scaleVertex(sb.Max.X, sb.Min.Y, vis.Max.X, vis.Min.Y),
	}
	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0] = s.composite
	op.Images[1] = s.pattern
	screen.DrawTrianglesShader(vs, quadIndices[:6], s.scaleShader, op)
}

func scaleVertex(dx, dy, sx, sy int) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(dx),
		DstY:   float32(dy),
		SrcX:   float32(sx),
		SrcY:   float32(sy),
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}
