// Package canvas provides the editor viewport widget: it renders the loaded
// image under the current view transform with the mask overlay, and routes
// pointer events to the input router.
package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"pixelmask/internal/app"
	"pixelmask/internal/input"
	"pixelmask/internal/view"
	"pixelmask/pkg/geometry"
)

// HUDStripWidth is the width in screen units of the info strip along the
// left edge of the viewport. Paint and erase are suppressed over it.
const HUDStripWidth = 96

var backgroundColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// EditorCanvas displays the session image and forwards interaction to the
// input router.
type EditorCanvas struct {
	widget.BaseWidget

	session *app.Session
	router  *input.Router
	raster  *fynecanvas.Raster

	// Cached RGBA conversion of the session source, rebuilt on image load.
	srcImage *image.RGBA

	cursor        geometry.Point
	cursorVisible bool
}

// New creates the editor canvas for a session.
func New(session *app.Session) *EditorCanvas {
	ec := &EditorCanvas{
		session: session,
		router:  input.NewRouter(session, HUDStripWidth),
	}

	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.raster.SetMinSize(fyne.NewSize(400, 300))

	session.On(app.EventImageLoaded, func(interface{}) {
		src, _ := session.Source()
		if src != nil {
			ec.srcImage = src.RGBA()
		} else {
			ec.srcImage = nil
		}
		ec.Refresh()
	})
	session.On(app.EventViewChanged, func(interface{}) { ec.Refresh() })
	session.On(app.EventMaskChanged, func(interface{}) { ec.Refresh() })
	session.On(app.EventBrushChanged, func(interface{}) { ec.Refresh() })
	session.On(app.EventModeChanged, func(interface{}) { ec.Refresh() })

	ec.ExtendBaseWidget(ec)
	return ec
}

// Router returns the input router driving this canvas.
func (ec *EditorCanvas) Router() *input.Router {
	return ec.router
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.raster)
}

// Resize records the viewport size for the view transform.
func (ec *EditorCanvas) Resize(size fyne.Size) {
	ec.session.SetViewport(geometry.Sz(float64(size.Width), float64(size.Height)))
	ec.BaseWidget.Resize(size)
}

// Refresh redraws the viewport.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
}

// MouseDown implements desktop.Mouseable.
func (ec *EditorCanvas) MouseDown(ev *desktop.MouseEvent) {
	ec.router.PointerDown(eventPoint(ev.Position), mapButton(ev.Button))
	ec.Refresh()
}

// MouseUp implements desktop.Mouseable.
func (ec *EditorCanvas) MouseUp(ev *desktop.MouseEvent) {
	ec.router.PointerUp(eventPoint(ev.Position), mapButton(ev.Button))
}

// MouseIn implements desktop.Hoverable.
func (ec *EditorCanvas) MouseIn(ev *desktop.MouseEvent) {
	ec.cursor = eventPoint(ev.Position)
	ec.cursorVisible = true
	ec.Refresh()
}

// MouseMoved implements desktop.Hoverable.
func (ec *EditorCanvas) MouseMoved(ev *desktop.MouseEvent) {
	ec.cursor = eventPoint(ev.Position)
	ec.cursorVisible = true
	ec.router.PointerMoved(ec.cursor)
	if ec.router.Masking() {
		ec.Refresh()
	}
}

// MouseOut implements desktop.Hoverable.
func (ec *EditorCanvas) MouseOut() {
	ec.cursorVisible = false
	ec.Refresh()
}

// Dragged implements fyne.Draggable; drags continue pan or brush strokes.
func (ec *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	ec.cursor = eventPoint(ev.Position)
	ec.cursorVisible = true
	ec.router.PointerMoved(ec.cursor)
}

// DragEnd implements fyne.Draggable.
func (ec *EditorCanvas) DragEnd() {}

// Scrolled implements fyne.Scrollable; the wheel always zooms toward the
// cursor.
func (ec *EditorCanvas) Scrolled(ev *fyne.ScrollEvent) {
	delta := float64(ev.Scrolled.DY) / 10
	ec.router.Scrolled(eventPoint(ev.Position), delta)
}

func eventPoint(pos fyne.Position) geometry.Point {
	return geometry.Pt(float64(pos.X), float64(pos.Y))
}

func mapButton(btn desktop.MouseButton) input.Button {
	switch btn {
	case desktop.MouseButtonPrimary:
		return input.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return input.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return input.ButtonMiddle
	default:
		return input.ButtonNone
	}
}

// draw renders one frame. w and h are raster pixels; positions coming from
// events are screen units, so everything computed in screen units is scaled
// by the pixel density before touching the output raster.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(out, backgroundColor)

	viewport := ec.session.Viewport()
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return out
	}
	density := float64(w) / viewport.Width

	if ec.srcImage != nil {
		rect, _ := view.ImageRect(ec.session.View(), ec.session.ImageSize(), viewport)
		dst := image.Rect(
			int(rect.X*density),
			int(rect.Y*density),
			int((rect.X+rect.Width)*density),
			int((rect.Y+rect.Height)*density),
		)
		xdraw.NearestNeighbor.Scale(out, dst, ec.srcImage, ec.srcImage.Bounds(), xdraw.Over, nil)
		ec.drawMaskOverlay(out, dst)
	}

	if ec.cursorVisible && ec.router.Masking() {
		drawBrushRing(out, ec.cursor.Scale(density), ec.session.BrushRadius()*density)
	}

	ec.drawHUD(out, density)
	return out
}

// drawMaskOverlay tints masked pixels inside the destination rectangle.
func (ec *EditorCanvas) drawMaskOverlay(out *image.RGBA, dst image.Rectangle) {
	m := ec.session.Mask()
	if m == nil || m.Width() == 0 {
		return
	}

	clip := dst.Intersect(out.Bounds())
	scaleX := float64(m.Width()) / float64(dst.Dx())
	scaleY := float64(m.Height()) / float64(dst.Dy())

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		my := int(float64(y-dst.Min.Y) * scaleY)
		for x := clip.Min.X; x < clip.Max.X; x++ {
			mx := int(float64(x-dst.Min.X) * scaleX)
			alpha := m.AlphaAt(mx, my)
			if alpha == 0 {
				continue
			}
			blendTint(out, x, y, alpha)
		}
	}
}

// blendTint blends the mask tint color over a single output pixel.
func blendTint(out *image.RGBA, x, y int, alpha uint8) {
	i := out.PixOffset(x, y)
	a := float64(alpha) / 255.0
	out.Pix[i+0] = uint8(255*a + float64(out.Pix[i+0])*(1-a))
	out.Pix[i+1] = uint8(64*a + float64(out.Pix[i+1])*(1-a))
	out.Pix[i+2] = uint8(64*a + float64(out.Pix[i+2])*(1-a))
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}
