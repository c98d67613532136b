// Package input routes pointer and key events to the view transform or the
// mask raster depending on the current editor mode.
package input

import (
	"pixelmask/internal/app"
	"pixelmask/internal/view"
	"pixelmask/pkg/geometry"
)

// Button identifies a pointer button in toolkit-independent terms.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// BrushKey identifies the two discrete brush-size bindings.
type BrushKey int

const (
	BrushGrow BrushKey = iota
	BrushShrink
)

// Mode is the router state. At most one of Panning/Masking is reported at a
// time; panning takes precedence while the middle button is held.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeMasking
)

func (m Mode) String() string {
	switch m {
	case ModePanning:
		return "Panning"
	case ModeMasking:
		return "Masking"
	default:
		return "Idle"
	}
}

// Router decides whether a pointer event drives the view transform, the mask
// canvas, or neither.
type Router struct {
	session *app.Session

	// stripWidth is the width of the UI control strip along the left screen
	// edge; paint and erase are suppressed over it.
	stripWidth float64

	masking bool
	panning bool
	stroke  Button // paint/erase button held during the current stroke
	last    geometry.Point
}

// NewRouter creates a router for the given session. stripWidth is the width
// of the UI control strip along the left screen edge in screen units.
func NewRouter(session *app.Session, stripWidth float64) *Router {
	return &Router{session: session, stripWidth: stripWidth}
}

// Mode returns the current router mode.
func (r *Router) Mode() Mode {
	switch {
	case r.panning:
		return ModePanning
	case r.masking:
		return ModeMasking
	default:
		return ModeIdle
	}
}

// Masking reports whether the masking toggle is active.
func (r *Router) Masking() bool {
	return r.masking
}

// SetMasking toggles masking mode. Masking is only enterable with an image
// loaded. Leaving masking discards the mask; entering leaves any existing
// mask content alone.
func (r *Router) SetMasking(on bool) bool {
	if on == r.masking {
		return r.masking
	}
	if on && !r.session.HasImage() {
		return false
	}
	r.masking = on
	if !on {
		r.stroke = ButtonNone
		if m := r.session.Mask(); m != nil {
			m.Clear()
			r.session.Emit(app.EventMaskChanged, nil)
		}
	}
	r.session.Emit(app.EventModeChanged, r.Mode())
	return r.masking
}

// PointerDown handles a button press at the given screen position.
func (r *Router) PointerDown(pos geometry.Point, btn Button) {
	r.last = pos

	switch btn {
	case ButtonMiddle:
		if r.session.HasImage() {
			r.panning = true
			r.session.Emit(app.EventModeChanged, r.Mode())
		}
	case ButtonPrimary, ButtonSecondary:
		if !r.canPaintAt(pos) {
			return
		}
		r.stroke = btn
		r.applyBrush(pos, btn)
	}
}

// PointerUp handles a button release.
func (r *Router) PointerUp(pos geometry.Point, btn Button) {
	switch btn {
	case ButtonMiddle:
		if r.panning {
			r.panning = false
			r.session.Emit(app.EventModeChanged, r.Mode())
		}
	case r.stroke:
		r.stroke = ButtonNone
	}
}

// PointerMoved handles pointer motion. While panning the delta since the
// previous move drives the view; while a paint/erase button is held the
// stroke continues.
func (r *Router) PointerMoved(pos geometry.Point) {
	delta := pos.Sub(r.last)
	r.last = pos

	if r.panning {
		r.session.SetView(view.Pan(r.session.View(), delta))
		return
	}
	if r.stroke != ButtonNone {
		if r.canPaintAt(pos) {
			r.applyBrush(pos, r.stroke)
		}
	}
}

// Scrolled zooms toward the cursor. Zoom is permitted in every mode; it does
// not conflict with painting.
func (r *Router) Scrolled(pos geometry.Point, delta float64) {
	if !r.session.HasImage() {
		return
	}
	s := r.session
	s.SetView(view.Zoom(s.View(), pos, delta, s.ImageSize(), s.Viewport()))
}

// KeyPressed handles the brush-size bindings. They are accepted only while
// masking is active.
func (r *Router) KeyPressed(key BrushKey) bool {
	if !r.masking {
		return false
	}
	switch key {
	case BrushGrow:
		r.session.SetBrushRadius(r.session.BrushRadius() + app.BrushStep)
	case BrushShrink:
		r.session.SetBrushRadius(r.session.BrushRadius() - app.BrushStep)
	}
	return true
}

// canPaintAt reports whether a paint/erase event at the given screen
// position may reach the mask.
func (r *Router) canPaintAt(pos geometry.Point) bool {
	if !r.masking || r.panning || !r.session.HasImage() {
		return false
	}
	// Events over the UI control strip are suppressed.
	return pos.X >= r.stripWidth
}

// applyBrush converts the screen position and brush radius to image space
// and stamps the mask. The radius conversion happens here, per stroke, since
// zoom can change between strokes.
func (r *Router) applyBrush(pos geometry.Point, btn Button) {
	s := r.session
	m := s.Mask()
	if m == nil {
		return
	}

	center, _ := view.ScreenToImage(pos, s.View(), s.ImageSize(), s.Viewport())
	radius := s.BrushRadiusImage()

	switch btn {
	case ButtonPrimary:
		m.Paint(center.X, center.Y, radius)
	case ButtonSecondary:
		m.Erase(center.X, center.Y, radius)
	default:
		return
	}
	s.Emit(app.EventMaskChanged, nil)
}
