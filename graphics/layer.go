package graphics

// Layer selects which vertex array a sprite is queued into.
type Layer int

const (
	// LayerTile holds level tiles.
	LayerTile Layer = iota
	// LayerPhysical holds objects in the physical world.
	LayerPhysical
	// LayerDream holds objects in the dream world.
	LayerDream
	// LayerBoth holds objects drawn in both worlds.
	LayerBoth
	// LayerInterface holds screen-relative interface elements.
	LayerInterface

	LayerCount
)

func (l Layer) String() string {
	switch l {
	case LayerTile:
		return "tile"
	case LayerPhysical:
		return "physical"
	case LayerDream:
		return "dream"
	case LayerBoth:
		return "both"
	case LayerInterface:
		return "interface"
	}
	return "unknown"
}

// Orientation is one of the eight orthogonal sprite orientations.
type Orientation int

const (
	Normal Orientation = iota
	Rotate90
	Rotate180
	Rotate270
	FlipVertical
	Transpose2
	FlipHorizontal
	Transpose
)

// HAlign is the horizontal alignment of queued text.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical alignment of queued text.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)
