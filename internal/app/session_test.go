package app

import (
	"math"
	"testing"

	pximage "pixelmask/internal/image"
	"pixelmask/pkg/geometry"
)

func newLoadedSession() *Session {
	s := NewSession()
	s.SetViewport(geometry.Sz(1000, 1000))
	s.SetImage(pximage.NewBuffer(100, 100), "test.png")
	return s
}

func TestSetImageInstallsDerivedState(t *testing.T) {
	s := newLoadedSession()

	if !s.HasImage() {
		t.Fatal("session should report a loaded image")
	}
	if _, path := s.Source(); path != "test.png" {
		t.Errorf("source path = %q, want test.png", path)
	}

	m := s.Mask()
	if m == nil || m.Width() != 100 || m.Height() != 100 {
		t.Fatal("mask must be created at the image dimensions")
	}

	v := s.View()
	if v.Zoom != 1.0 || v.Pan != (geometry.Point{}) {
		t.Errorf("fresh view = %+v, want unit zoom with no pan", v)
	}
	if math.Abs(v.BaseScale-9.0) > 1e-9 {
		t.Errorf("base scale = %v, want 9 for a 100px image in a 1000px viewport", v.BaseScale)
	}
}

func TestSetImageReplacesMask(t *testing.T) {
	s := newLoadedSession()
	s.Mask().Paint(50, 50, 10)

	s.SetImage(pximage.NewBuffer(40, 40), "next.png")
	m := s.Mask()
	if m.Width() != 40 || m.Height() != 40 {
		t.Fatalf("mask size = %dx%d, want the new image's 40x40", m.Width(), m.Height())
	}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if m.IsMasked(x, y) {
				t.Fatal("replacement mask must start fully transparent")
			}
		}
	}
}

func TestBrushRadiusClamped(t *testing.T) {
	s := NewSession()

	s.SetBrushRadius(150)
	if got := s.BrushRadius(); got != MaxBrushRadius {
		t.Errorf("radius = %v, want clamp at %v", got, MaxBrushRadius)
	}

	s.SetBrushRadius(2)
	if got := s.BrushRadius(); got != MinBrushRadius {
		t.Errorf("radius = %v, want clamp at %v", got, MinBrushRadius)
	}
}

func TestBrushRadiusImageTracksScale(t *testing.T) {
	s := newLoadedSession()
	s.SetBrushRadius(27)

	if got := s.BrushRadiusImage(); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("image-space radius = %v, want 3 at scale 9", got)
	}

	v := s.View()
	v.Zoom = 3.0
	s.SetView(v)
	if got := s.BrushRadiusImage(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("image-space radius = %v, want 1 after zooming to 3x", got)
	}
}

func TestRefitViewUsesCurrentViewport(t *testing.T) {
	s := newLoadedSession()

	v := s.View()
	v.Zoom = 4.0
	v.Pan = geometry.Pt(120, -30)
	s.SetView(v)

	s.SetViewport(geometry.Sz(500, 500))
	s.RefitView()

	v = s.View()
	if v.Zoom != 1.0 || v.Pan != (geometry.Point{}) {
		t.Errorf("refit view = %+v, want reset zoom and pan", v)
	}
	if math.Abs(v.BaseScale-4.5) > 1e-9 {
		t.Errorf("base scale = %v, want 4.5 for the shrunk viewport", v.BaseScale)
	}
}

func TestRefitViewWithoutImageIsNoop(t *testing.T) {
	s := NewSession()
	before := s.View()
	s.RefitView()
	if s.View() != before {
		t.Error("refit must not alter the view when no image is loaded")
	}
}

func TestEventsFire(t *testing.T) {
	s := NewSession()
	s.SetViewport(geometry.Sz(1000, 1000))

	var loaded, brush, viewed int
	s.On(EventImageLoaded, func(interface{}) { loaded++ })
	s.On(EventBrushChanged, func(interface{}) { brush++ })
	s.On(EventViewChanged, func(interface{}) { viewed++ })

	s.SetImage(pximage.NewBuffer(10, 10), "a.png")
	s.SetBrushRadius(40)
	s.RefitView()

	if loaded != 1 {
		t.Errorf("image-loaded fired %d times, want 1", loaded)
	}
	if brush != 1 {
		t.Errorf("brush-changed fired %d times, want 1", brush)
	}
	if viewed != 1 {
		t.Errorf("view-changed fired %d times, want 1", viewed)
	}
}
