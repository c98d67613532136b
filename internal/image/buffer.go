// Package image provides the typed pixel buffer, image loading, and derived
// file naming used by the editor.
package image

import (
	"image"
	"image/color"
)

// Transparent is the pixel value written for cleared output pixels.
var Transparent = color.RGBA{}

// Buffer is an owned, bounds-checked RGBA pixel buffer with a top-left
// origin. Reads outside the buffer return a fully transparent pixel and
// writes outside are dropped, so callers never index raw memory directly.
type Buffer struct {
	width  int
	height int
	pix    []color.RGBA
}

// NewBuffer creates a fully transparent buffer of the given dimensions.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]color.RGBA, width*height),
	}
}

// FromImage copies a decoded image into a new Buffer. The buffer origin is
// (0,0) regardless of the source bounds.
func FromImage(src image.Image) *Buffer {
	bounds := src.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < buf.height; y++ {
		for x := 0; x < buf.width; x++ {
			r, g, b, a := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			buf.pix[y*buf.width+x] = color.RGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			}
		}
	}
	return buf
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// At returns the pixel at (x, y), or a transparent pixel outside the buffer.
func (b *Buffer) At(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Transparent
	}
	return b.pix[y*b.width+x]
}

// Set writes the pixel at (x, y). Writes outside the buffer are ignored.
func (b *Buffer) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pix[y*b.width+x] = c
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := NewBuffer(b.width, b.height)
	copy(out.pix, b.pix)
	return out
}

// RGBA converts the buffer to a standard *image.RGBA for encoding or drawing.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.pix[y*b.width+x]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}
