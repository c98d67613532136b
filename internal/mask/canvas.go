// Package mask provides the alpha-only brush raster painted over the loaded
// image.
package mask

import (
	"image"
	"math"
)

// PaintedAlpha is the constant alpha written by Paint. Masking is boolean,
// not graded: repeated overlapping strokes re-apply the same value instead of
// accumulating, and partial opacity keeps the image visible under the tint.
const PaintedAlpha = 160

// Canvas is an alpha raster with the same dimensions as the loaded image.
// Coordinates are image-space pixels with a top-left origin.
type Canvas struct {
	width  int
	height int
	alpha  []uint8
}

// New creates a fully transparent canvas of the given dimensions.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		alpha:  make([]uint8, width*height),
	}
}

// Width returns the raster width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the raster height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Paint sets every cell whose center lies within radius of the given
// image-space point to PaintedAlpha.
func (c *Canvas) Paint(cx, cy, radius float64) {
	c.stamp(cx, cy, radius, PaintedAlpha)
}

// Erase clears every cell within the same disk Paint would cover, so a paint
// followed by an erase with identical arguments leaves no residual alpha.
func (c *Canvas) Erase(cx, cy, radius float64) {
	c.stamp(cx, cy, radius, 0)
}

// stamp writes value into every cell whose center falls inside the disk.
// Only the bounding box of the disk, clipped to the raster, is visited;
// scanning the full raster per stroke is too slow for interactive painting.
func (c *Canvas) stamp(cx, cy, radius float64, value uint8) {
	if radius < 1.0 {
		// A click must always cover at least one pixel region, even when
		// zoomed far out and the screen radius converts to under a pixel.
		radius = 1.0
	}

	minX := clampInt(int(math.Floor(cx-radius))-1, 0, c.width)
	maxX := clampInt(int(math.Ceil(cx+radius))+1, 0, c.width)
	minY := clampInt(int(math.Floor(cy-radius))-1, 0, c.height)
	maxY := clampInt(int(math.Ceil(cy+radius))+1, 0, c.height)

	r2 := radius * radius
	for y := minY; y < maxY; y++ {
		dy := float64(y) + 0.5 - cy
		for x := minX; x < maxX; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.alpha[y*c.width+x] = value
			}
		}
	}
}

// Clear resets every cell to fully transparent.
func (c *Canvas) Clear() {
	for i := range c.alpha {
		c.alpha[i] = 0
	}
}

// IsMasked reports whether the cell at (x, y) carries any mask alpha.
// Out-of-range cells are never masked.
func (c *Canvas) IsMasked(x, y int) bool {
	return c.AlphaAt(x, y) > 0
}

// AlphaAt returns the alpha value at (x, y), or 0 outside the raster.
func (c *Canvas) AlphaAt(x, y int) uint8 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0
	}
	return c.alpha[y*c.width+x]
}

// Image returns the raster as a drawable alpha texture. The returned image
// shares the canvas storage; it is valid until the next mutation.
func (c *Canvas) Image() *image.Alpha {
	return &image.Alpha{
		Pix:    c.alpha,
		Stride: c.width,
		Rect:   image.Rect(0, 0, c.width, c.height),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
