// Package quantize reduces an image to a limited color palette with optional
// dithering and color correction. It is the post-processing step applied to
// the masked-out export, either in-process or through an external tool.
package quantize

import (
	"errors"
	"fmt"

	pximage "pixelmask/internal/image"
)

// ErrToolFailure is returned when the external post-processing tool exits
// non-zero. No partial output is consumed.
var ErrToolFailure = errors.New("post-processing tool failed")

// Parameter limits.
const (
	MinColors      = 1
	MaxColors      = 256
	MinDitherScale = 1
	MaxDitherScale = 5
)

// Params configures a post-processing run.
type Params struct {
	MaxColors    int    `json:"max_colors"`    // palette size, 1-256
	DitherScale  int    `json:"dither_scale"`  // dither pattern size, 1-5
	Dither       bool   `json:"dither"`        // apply ordered dithering
	ColorCorrect bool   `json:"color_correct"` // stretch levels before quantizing
	UsePalette   bool   `json:"use_palette"`   // derive the palette from PalettePath
	PalettePath  string `json:"palette_path,omitempty"`
}

// DefaultParams returns sensible defaults for interactive use.
func DefaultParams() Params {
	return Params{MaxColors: 16, DitherScale: 1, Dither: true}
}

// Validate checks parameter ranges.
func (p Params) Validate() error {
	if p.MaxColors < MinColors || p.MaxColors > MaxColors {
		return fmt.Errorf("max colors %d out of range [%d, %d]", p.MaxColors, MinColors, MaxColors)
	}
	if p.DitherScale < MinDitherScale || p.DitherScale > MaxDitherScale {
		return fmt.Errorf("dither scale %d out of range [%d, %d]", p.DitherScale, MinDitherScale, MaxDitherScale)
	}
	if p.UsePalette && p.PalettePath == "" {
		return fmt.Errorf("palette enabled but no palette path given")
	}
	return nil
}

// Processor runs post-processing on the image at src and returns the output
// file path.
type Processor interface {
	Process(src string, params Params) (string, error)
}

// Local is the in-process Processor implementation.
type Local struct{}

// Process quantizes the image at src and writes the result beside it.
func (Local) Process(src string, params Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	buf, err := pximage.Load(src)
	if err != nil {
		return "", err
	}

	out, err := Apply(buf, params)
	if err != nil {
		return "", err
	}

	outPath := pximage.DerivedPath(src, "quantized")
	if err := pximage.SavePNG(outPath, out); err != nil {
		return "", err
	}
	return outPath, nil
}

// Apply runs the quantization pipeline on an in-memory buffer. Fully
// transparent pixels stay transparent and never contribute to the palette.
func Apply(buf *pximage.Buffer, params Params) (*pximage.Buffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.ColorCorrect {
		buf = StretchLevels(buf)
	}

	paletteSrc := buf
	if params.UsePalette {
		ref, err := pximage.Load(params.PalettePath)
		if err != nil {
			return nil, fmt.Errorf("palette reference: %w", err)
		}
		paletteSrc = ref
	}

	palette, err := Palette(paletteSrc, params.MaxColors)
	if err != nil {
		return nil, err
	}

	if params.Dither {
		return Dither(buf, palette, params.DitherScale), nil
	}
	return MapToPalette(buf, palette), nil
}
