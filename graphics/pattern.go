package graphics

import (
	"image"
	"image/color"
	"math/rand"
)

const (
	noiseTile   = 64
	patternTile = 16
)

// noiseImage returns a w×h image tiled with a noiseTile square of value
// noise. Red and green hold independent channels.
func noiseImage(w, h int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	var tile [noiseTile * noiseTile][2]uint8
	for i := range tile {
		tile[i][0] = uint8(rng.Intn(256))
		tile[i][1] = uint8(rng.Intn(256))
	}
	// one box blur pass so the noise reads as cloud rather than static
	var smooth [noiseTile * noiseTile][2]uint8
	for y := 0; y < noiseTile; y++ {
		for x := 0; x < noiseTile; x++ {
			for c := 0; c < 2; c++ {
				sum := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						xx := (x + dx + noiseTile) % noiseTile
						yy := (y + dy + noiseTile) % noiseTile
						sum += int(tile[yy*noiseTile+xx][c])
					}
				}
				smooth[y*noiseTile+x][c] = uint8(sum / 9)
			}
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := smooth[(y%noiseTile)*noiseTile+x%noiseTile]
			img.SetRGBA(x, y, color.RGBA{R: t[0], G: t[1], A: 0xff})
		}
	}
	return img
}

// hilbertIndex returns the distance along a Hilbert curve filling an n×n
// square of the cell (x, y). n must be a power of two.
func hilbertIndex(n, x, y int) int {
	d := 0
	for s := n / 2; s > 0; s /= 2 {
		rx, ry := 0, 0
		if x&s != 0 {
			rx = 1
		}
		if y&s != 0 {
			ry = 1
		}
		d += s * s * ((3 * rx) ^ ry)
		if ry == 0 {
			if rx == 1 {
				x = n - 1 - x
				y = n - 1 - y
			}
			x, y = y, x
		}
	}
	return d
}

// patternImage returns a w×h image tiled with a Hilbert curve dither
// pattern in the red channel.
func patternImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := hilbertIndex(patternTile, x%patternTile, y%patternTile)
			v := uint8(d * 255 / (patternTile*patternTile - 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return img
}
