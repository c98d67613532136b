// Package view maps between screen space and image-pixel space.
//
// Both spaces use a top-left origin with Y growing downward. ScreenToImage is
// the single conversion point between them; no other code mixes the two
// conventions in one computation.
package view

import (
	"pixelmask/pkg/geometry"
)

const (
	// MinZoom and MaxZoom bound the user zoom multiplier.
	MinZoom = 0.1
	MaxZoom = 10.0

	// ZoomSensitivity converts one scroll unit into a zoom increment.
	ZoomSensitivity = 0.1

	// fitMargin leaves a border around a freshly loaded image.
	fitMargin = 0.9
)

// State holds the view parameters for the loaded image.
//
// BaseScale is computed once per image load by FitScale and stays fixed until
// the next load; the effective screen-pixels-per-image-pixel ratio at any
// moment is BaseScale * Zoom.
type State struct {
	Zoom      float64
	Pan       geometry.Point
	BaseScale float64
}

// NewState returns the view state for a freshly loaded image.
func NewState(img, screen geometry.Size) State {
	return State{
		Zoom:      1.0,
		BaseScale: FitScale(img, screen),
	}
}

// FitScale returns the scale that fits an image inside the screen with a
// small margin.
func FitScale(img, screen geometry.Size) float64 {
	if img.Width <= 0 || img.Height <= 0 {
		return 1.0
	}
	scaleX := screen.Width / img.Width
	scaleY := screen.Height / img.Height
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	return scale * fitMargin
}

// Scale returns the effective screen-pixels-per-image-pixel ratio.
func (s State) Scale() float64 {
	return s.BaseScale * s.Zoom
}

// ImageRect returns the destination rectangle of the image on screen and the
// effective scale. The rectangle is anchored so that at Zoom == 1 the image
// sits centered (pan aside); zooming grows the rectangle from that anchor,
// which is what makes the cursor-anchored pan correction in Zoom exact.
func ImageRect(s State, img, screen geometry.Size) (geometry.Rect, float64) {
	scale := s.Scale()
	origin := geometry.Point{
		X: (screen.Width-img.Width*s.BaseScale)/2 + s.Pan.X,
		Y: (screen.Height-img.Height*s.BaseScale)/2 + s.Pan.Y,
	}
	return geometry.Rect{
		X:      origin.X,
		Y:      origin.Y,
		Width:  img.Width * scale,
		Height: img.Height * scale,
	}, scale
}

// Zoom applies one zoom step anchored at the cursor: the image point under
// the cursor maps to the same screen point before and after the step.
func Zoom(s State, cursor geometry.Point, delta float64, img, screen geometry.Size) State {
	oldZoom := s.Zoom
	newZoom := geometry.Clamp(oldZoom+delta*ZoomSensitivity, MinZoom, MaxZoom)
	if newZoom == oldZoom {
		return s
	}

	rect, _ := ImageRect(s, img, screen)
	factor := newZoom / oldZoom

	s.Zoom = newZoom
	s.Pan = s.Pan.Add(cursor.Sub(rect.Origin()).Scale(1 - factor))
	return s
}

// Pan accumulates a pan delta. Panning is unbounded; the image may be
// dragged fully off-screen.
func Pan(s State, delta geometry.Point) State {
	s.Pan = s.Pan.Add(delta)
	return s
}

// ScreenToImage inverts ImageRect for a single point. The returned flag is
// true iff the image-space point lies within [0, width) x [0, height).
func ScreenToImage(p geometry.Point, s State, img, screen geometry.Size) (geometry.Point, bool) {
	rect, scale := ImageRect(s, img, screen)
	if scale == 0 {
		return geometry.Point{}, false
	}
	ip := p.Sub(rect.Origin()).Scale(1 / scale)
	inside := ip.X >= 0 && ip.X < img.Width && ip.Y >= 0 && ip.Y < img.Height
	return ip, inside
}

// ImageToScreen maps an image-space point onto the screen.
func ImageToScreen(p geometry.Point, s State, img, screen geometry.Size) geometry.Point {
	rect, scale := ImageRect(s, img, screen)
	return rect.Origin().Add(p.Scale(scale))
}
