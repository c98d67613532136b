package quantize

import (
	"image/color"
	"sort"

	"gonum.org/v1/gonum/stat"

	pximage "pixelmask/internal/image"
)

// Percentiles used for the levels stretch. Clipping a little off both ends
// keeps single outlier pixels from neutralizing the correction.
const (
	levelsLow  = 0.01
	levelsHigh = 0.99
)

// StretchLevels applies a per-channel linear levels stretch so that the 1st
// and 99th percentile of each channel map to 0 and 255. Transparent pixels
// are ignored when measuring and left untouched.
func StretchLevels(buf *pximage.Buffer) *pximage.Buffer {
	w, h := buf.Size()

	var reds, greens, blues []float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := buf.At(x, y)
			if c.A == 0 {
				continue
			}
			reds = append(reds, float64(c.R))
			greens = append(greens, float64(c.G))
			blues = append(blues, float64(c.B))
		}
	}
	if len(reds) == 0 {
		return buf.Clone()
	}

	rLo, rHi := channelRange(reds)
	gLo, gHi := channelRange(greens)
	bLo, bHi := channelRange(blues)

	out := pximage.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := buf.At(x, y)
			if c.A == 0 {
				continue
			}
			out.Set(x, y, color.RGBA{
				R: remap(c.R, rLo, rHi),
				G: remap(c.G, gLo, gHi),
				B: remap(c.B, bLo, bHi),
				A: c.A,
			})
		}
	}
	return out
}

// channelRange returns the clipped low/high percentile of a channel.
func channelRange(values []float64) (float64, float64) {
	sort.Float64s(values)
	lo := stat.Quantile(levelsLow, stat.Empirical, values, nil)
	hi := stat.Quantile(levelsHigh, stat.Empirical, values, nil)
	if hi <= lo {
		return 0, 255
	}
	return lo, hi
}

// remap linearly maps v from [lo, hi] onto [0, 255] with clamping.
func remap(v uint8, lo, hi float64) uint8 {
	scaled := (float64(v) - lo) / (hi - lo) * 255.0
	return clampChannel(float32(scaled))
}
