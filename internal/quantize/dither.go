package quantize

import (
	"image/color"

	pximage "pixelmask/internal/image"
)

// bayer4 is the 4x4 ordered-dither threshold matrix.
var bayer4 = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// ditherSpread is the total threshold amplitude in channel units.
const ditherSpread = 48.0

// MapToPalette snaps every opaque pixel to its nearest palette color.
// Transparent pixels are left untouched.
func MapToPalette(buf *pximage.Buffer, palette []color.RGBA) *pximage.Buffer {
	w, h := buf.Size()
	out := pximage.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := buf.At(x, y)
			if c.A == 0 {
				continue
			}
			q := palette[nearestIndex(palette, c)]
			q.A = c.A
			out.Set(x, y, q)
		}
	}
	return out
}

// Dither maps every opaque pixel to the palette with ordered dithering. The
// scale stretches the threshold pattern over scale x scale pixel blocks.
func Dither(buf *pximage.Buffer, palette []color.RGBA, scale int) *pximage.Buffer {
	if scale < 1 {
		scale = 1
	}
	w, h := buf.Size()
	out := pximage.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := buf.At(x, y)
			if c.A == 0 {
				continue
			}
			threshold := bayer4[(y/scale)%4][(x/scale)%4]
			offset := (float64(threshold)/16.0 - 0.5) * ditherSpread
			shifted := color.RGBA{
				R: clampChannel(float32(float64(c.R) + offset)),
				G: clampChannel(float32(float64(c.G) + offset)),
				B: clampChannel(float32(float64(c.B) + offset)),
				A: 255,
			}
			q := palette[nearestIndex(palette, shifted)]
			q.A = c.A
			out.Set(x, y, q)
		}
	}
	return out
}

// nearestIndex returns the index of the palette color closest to c by
// squared RGB distance.
func nearestIndex(palette []color.RGBA, c color.RGBA) int {
	best := 0
	bestDist := 1 << 30
	for i, p := range palette {
		dr := int(p.R) - int(c.R)
		dg := int(p.G) - int(c.G)
		db := int(p.B) - int(c.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}
