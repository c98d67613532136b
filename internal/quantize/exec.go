package quantize

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	pximage "pixelmask/internal/image"
)

// Tool runs post-processing through an external binary implementing the
// maskquant command-line contract (see cmd/maskquant). Useful when the
// quantizer should run out of process or be swapped for another tool.
type Tool struct {
	Path string
}

// Process invokes the tool on src. A non-zero exit surfaces as ErrToolFailure
// with the tool's output attached; the output file is not consumed on error.
func (t Tool) Process(src string, params Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	outPath := pximage.DerivedPath(src, "quantized")
	args := []string{
		"-colors", strconv.Itoa(params.MaxColors),
		"-scale", strconv.Itoa(params.DitherScale),
		"-o", outPath,
	}
	if params.Dither {
		args = append(args, "-dither")
	}
	if params.ColorCorrect {
		args = append(args, "-color-correct")
	}
	if params.UsePalette {
		args = append(args, "-palette", params.PalettePath)
	}
	args = append(args, src)

	output, err := exec.Command(t.Path, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s", ErrToolFailure, msg)
	}
	return outPath, nil
}
