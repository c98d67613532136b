// HUD strip and brush cursor drawn directly into the viewport raster.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"pixelmask/pkg/geometry"
)

// glyphs contains 3x5 pixel patterns for the characters the HUD needs.
// Each glyph is 5 rows of 3 bits.
var glyphs = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'G': {0b011, 0b100, 0b101, 0b101, 0b011},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b101, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b101, 0b101},
	'O': {0b010, 0b101, 0b101, 0b101, 0b010},
	'P': {0b110, 0b101, 0b110, 0b100, 0b100},
	'R': {0b110, 0b101, 0b110, 0b101, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
	'%': {0b101, 0b001, 0b010, 0b100, 0b101},
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
}

var (
	hudBackground = color.RGBA{R: 24, G: 24, B: 24, A: 255}
	hudText       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	hudDim        = color.RGBA{R: 140, G: 140, B: 140, A: 255}
	ringColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// drawHUD renders the control strip along the left edge: current mode, zoom
// and brush readouts, and the pointer bindings.
func (ec *EditorCanvas) drawHUD(out *image.RGBA, density float64) {
	stripW := int(HUDStripWidth * density)
	bounds := out.Bounds()
	if stripW > bounds.Dx() {
		stripW = bounds.Dx()
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Min.X+stripW; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = hudBackground.R
			out.Pix[i+1] = hudBackground.G
			out.Pix[i+2] = hudBackground.B
			out.Pix[i+3] = hudBackground.A
		}
	}

	scale := int(2 * density)
	if scale < 1 {
		scale = 1
	}
	lineH := 7 * scale
	x := 2 * scale
	y := 2 * scale

	zoomPct := int(math.Round(ec.session.View().Zoom * 100))
	drawLabel(out, ec.router.Mode().String(), x, y, scale, hudText)
	y += lineH * 2
	drawLabel(out, fmt.Sprintf("ZOOM %d%%", zoomPct), x, y, scale, hudText)
	y += lineH
	drawLabel(out, fmt.Sprintf("SIZE %d", int(ec.session.BrushRadius())), x, y, scale, hudText)
	y += lineH * 2

	if ec.router.Masking() {
		for _, hint := range []string{"LMB PAINT", "RMB ERASE", "MMB PAN"} {
			drawLabel(out, hint, x, y, scale, hudDim)
			y += lineH
		}
	} else {
		drawLabel(out, "MMB PAN", x, y, scale, hudDim)
	}
}

// drawLabel draws uppercase text with the 3x5 HUD font at the given pixel
// scale. Characters without a glyph render as blanks.
func drawLabel(out *image.RGBA, text string, x, y, scale int, col color.RGBA) {
	bounds := out.Bounds()
	advance := 4 * scale
	for _, ch := range text {
		if ch >= 'a' && ch <= 'z' {
			ch = ch - 'a' + 'A'
		}
		pattern, ok := glyphs[ch]
		if !ok {
			pattern = glyphs[' ']
		}
		for row := 0; row < 5; row++ {
			for bit := 0; bit < 3; bit++ {
				if pattern[row]&(1<<(2-bit)) == 0 {
					continue
				}
				for sy := 0; sy < scale; sy++ {
					for sx := 0; sx < scale; sx++ {
						px := x + bit*scale + sx
						py := y + row*scale + sy
						if px >= bounds.Min.X && px < bounds.Max.X &&
							py >= bounds.Min.Y && py < bounds.Max.Y {
							out.Set(px, py, col)
						}
					}
				}
			}
		}
		x += advance
	}
}

// drawBrushRing draws the circular brush cursor outline.
func drawBrushRing(out *image.RGBA, center geometry.Point, radius float64) {
	if radius < 1 {
		return
	}
	bounds := out.Bounds()
	steps := int(2 * math.Pi * radius)
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		angle := float64(i) * 2 * math.Pi / float64(steps)
		x := int(center.X + radius*math.Cos(angle))
		y := int(center.Y + radius*math.Sin(angle))
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			out.Set(x, y, ringColor)
		}
	}
}
