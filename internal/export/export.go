// Package export writes the derived masked/unmasked images to disk and hands
// them to post-processing.
package export

import (
	"fmt"

	"pixelmask/internal/app"
	"pixelmask/internal/compositor"
	pximage "pixelmask/internal/image"
	"pixelmask/internal/mask"
	"pixelmask/internal/quantize"
)

// Exporter derives output files from a session. The Processor runs the
// palette quantization step on the unmasked export.
type Exporter struct {
	Processor quantize.Processor
}

// New creates an exporter using the in-process quantizer.
func New() *Exporter {
	return &Exporter{Processor: quantize.Local{}}
}

// MaskedImage writes the masked-in pixels (everything else transparent) next
// to the source as <name>_masked.png and returns the path.
func (e *Exporter) MaskedImage(s *app.Session) (string, error) {
	return e.writeDerived(s, "masked", compositor.Extract)
}

// UnmaskedImage writes the masked-out pixels next to the source as
// <name>_unmasked.png and returns the path.
func (e *Exporter) UnmaskedImage(s *app.Session) (string, error) {
	return e.writeDerived(s, "unmasked", compositor.Exclude)
}

// ProcessUnmasked writes the unmasked image and runs post-processing on it,
// returning the processed file path. The masked region is transparent in the
// intermediate file, so it cannot influence palette derivation.
func (e *Exporter) ProcessUnmasked(s *app.Session, params quantize.Params) (string, error) {
	path, err := e.UnmaskedImage(s)
	if err != nil {
		return "", err
	}
	out, err := e.Processor.Process(path, params)
	if err != nil {
		return "", fmt.Errorf("post-processing %s: %w", path, err)
	}
	return out, nil
}

func (e *Exporter) writeDerived(s *app.Session, suffix string, derive func(*pximage.Buffer, *mask.Canvas) (*pximage.Buffer, error)) (string, error) {
	src, path := s.Source()
	if src == nil {
		return "", app.ErrNoImage
	}

	out, err := derive(src, s.Mask())
	if err != nil {
		return "", err
	}

	outPath := pximage.DerivedPath(path, suffix)
	if err := pximage.SavePNG(outPath, out); err != nil {
		return "", err
	}
	return outPath, nil
}
