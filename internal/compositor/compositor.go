// Package compositor derives new pixel buffers from a source image and the
// mask raster.
package compositor

import (
	"errors"
	"fmt"

	pximage "pixelmask/internal/image"
	"pixelmask/internal/mask"
)

// ErrDimensionMismatch is returned when the mask raster and the source image
// disagree on dimensions. The session lifecycle keeps the two in lockstep,
// so hitting this indicates a programming error upstream.
var ErrDimensionMismatch = errors.New("image and mask dimensions differ")

// Extract keeps only masked pixels; everything else becomes transparent.
func Extract(src *pximage.Buffer, m *mask.Canvas) (*pximage.Buffer, error) {
	if err := checkDimensions(src, m); err != nil {
		return nil, err
	}

	out := pximage.NewBuffer(src.Width(), src.Height())
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			if m.IsMasked(x, y) {
				out.Set(x, y, src.At(x, y))
			}
		}
	}
	return out, nil
}

// Exclude is the complement of Extract: masked pixels become transparent and
// the rest of the image is kept. Its output feeds post-processing, so masked
// regions never influence downstream palette derivation.
func Exclude(src *pximage.Buffer, m *mask.Canvas) (*pximage.Buffer, error) {
	if err := checkDimensions(src, m); err != nil {
		return nil, err
	}

	out := pximage.NewBuffer(src.Width(), src.Height())
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			if !m.IsMasked(x, y) {
				out.Set(x, y, src.At(x, y))
			}
		}
	}
	return out, nil
}

// checkDimensions verifies the lifecycle invariant before any pixel is
// produced; both operations are all-or-nothing.
func checkDimensions(src *pximage.Buffer, m *mask.Canvas) error {
	if src.Width() != m.Width() || src.Height() != m.Height() {
		return fmt.Errorf("%w: image %dx%d, mask %dx%d", ErrDimensionMismatch,
			src.Width(), src.Height(), m.Width(), m.Height())
	}
	return nil
}
