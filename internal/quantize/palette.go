package quantize

import (
	"fmt"
	"image/color"

	"gocv.io/x/gocv"

	pximage "pixelmask/internal/image"
)

// maxSamples caps the pixel count fed to k-means; larger images are sampled
// on a stride.
const maxSamples = 1 << 16

// Palette derives a palette of at most maxColors colors from the opaque
// pixels of buf using k-means clustering in RGB space.
func Palette(buf *pximage.Buffer, maxColors int) ([]color.RGBA, error) {
	samples, distinct := collectSamples(buf)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no opaque pixels to derive a palette from")
	}

	// Small images may already fit the budget; clustering would only add
	// noise to an exact palette.
	if len(distinct) > 0 && len(distinct) <= maxColors {
		return distinct, nil
	}

	pixels := gocv.NewMatWithSize(len(samples), 3, gocv.MatTypeCV32F)
	defer pixels.Close()
	for i, c := range samples {
		pixels.SetFloatAt(i, 0, float32(c.R))
		pixels.SetFloatAt(i, 1, float32(c.G))
		pixels.SetFloatAt(i, 2, float32(c.B))
	}

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	criteria := gocv.NewTermCriteria(gocv.EPS+gocv.MaxIter, 100, 0.2)
	gocv.KMeans(pixels, maxColors, &labels, criteria, 10, gocv.KMeansPPCenters, &centers)

	palette := make([]color.RGBA, 0, maxColors)
	for i := 0; i < centers.Rows(); i++ {
		palette = append(palette, color.RGBA{
			R: clampChannel(centers.GetFloatAt(i, 0)),
			G: clampChannel(centers.GetFloatAt(i, 1)),
			B: clampChannel(centers.GetFloatAt(i, 2)),
			A: 255,
		})
	}
	return palette, nil
}

// collectSamples gathers opaque pixels on a stride that keeps the sample
// count under maxSamples, plus the set of distinct colors seen (capped once
// it exceeds any useful palette size).
func collectSamples(buf *pximage.Buffer) ([]color.RGBA, []color.RGBA) {
	w, h := buf.Size()
	total := w * h
	stride := 1
	for total/(stride*stride) > maxSamples {
		stride++
	}

	seen := make(map[color.RGBA]struct{})
	var samples, distinct []color.RGBA
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			c := buf.At(x, y)
			if c.A == 0 {
				continue
			}
			c.A = 255
			samples = append(samples, c)
			if len(seen) <= MaxColors {
				if _, ok := seen[c]; !ok {
					seen[c] = struct{}{}
					distinct = append(distinct, c)
				}
			}
		}
	}
	if len(distinct) > MaxColors {
		distinct = nil
	}
	return samples, distinct
}

func clampChannel(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
