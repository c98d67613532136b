package view

import (
	"math"
	"testing"

	"pixelmask/pkg/geometry"
)

var (
	testImage  = geometry.Sz(100, 100)
	testScreen = geometry.Sz(1000, 1000)
)

func TestFitScale(t *testing.T) {
	scale := FitScale(testImage, testScreen)
	want := 10.0 * 0.9
	if math.Abs(scale-want) > 1e-9 {
		t.Errorf("FitScale = %v, want %v", scale, want)
	}

	// Wide image limited by width.
	scale = FitScale(geometry.Sz(200, 50), geometry.Sz(100, 100))
	if math.Abs(scale-0.45) > 1e-9 {
		t.Errorf("FitScale wide = %v, want 0.45", scale)
	}

	if FitScale(geometry.Sz(0, 0), testScreen) != 1.0 {
		t.Error("FitScale should fall back to 1.0 for empty images")
	}
}

func TestImageRectCenteredAtUnitZoom(t *testing.T) {
	s := NewState(testImage, testScreen)
	rect, scale := ImageRect(s, testImage, testScreen)

	if math.Abs(scale-s.BaseScale) > 1e-9 {
		t.Errorf("scale = %v, want base scale %v", scale, s.BaseScale)
	}
	center := rect.Center()
	if math.Abs(center.X-500) > 1e-9 || math.Abs(center.Y-500) > 1e-9 {
		t.Errorf("rect center = %v, want (500, 500)", center)
	}
}

func TestZoomAnchorInvariant(t *testing.T) {
	cursors := []geometry.Point{
		{X: 500, Y: 500},
		{X: 123, Y: 777},
		{X: 900, Y: 80},
	}
	deltas := []float64{1, -1, 5, -3, 20}

	for _, cursor := range cursors {
		s := NewState(testImage, testScreen)
		for _, delta := range deltas {
			before, _ := ScreenToImage(cursor, s, testImage, testScreen)
			s = Zoom(s, cursor, delta, testImage, testScreen)
			after := ImageToScreen(before, s, testImage, testScreen)
			if cursor.Distance(after) > 1e-6 {
				t.Fatalf("anchor drifted: cursor %v delta %v moved to %v", cursor, delta, after)
			}
		}
	}
}

func TestZoomClamps(t *testing.T) {
	s := NewState(testImage, testScreen)
	cursor := geometry.Pt(500, 500)

	s = Zoom(s, cursor, 1000, testImage, testScreen)
	if s.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want clamp at %v", s.Zoom, MaxZoom)
	}

	s = Zoom(s, cursor, -1000, testImage, testScreen)
	if s.Zoom != MinZoom {
		t.Errorf("zoom = %v, want clamp at %v", s.Zoom, MinZoom)
	}
}

func TestPanAccumulatesUnbounded(t *testing.T) {
	s := NewState(testImage, testScreen)
	s = Pan(s, geometry.Pt(100000, -250))
	s = Pan(s, geometry.Pt(1, -1))

	want := geometry.Pt(100001, -251)
	if s.Pan != want {
		t.Errorf("pan = %v, want %v", s.Pan, want)
	}
}

func TestScreenToImageInsideFlag(t *testing.T) {
	s := NewState(testImage, testScreen)

	if _, inside := ScreenToImage(geometry.Pt(500, 500), s, testImage, testScreen); !inside {
		t.Error("screen center should map inside the image")
	}
	if _, inside := ScreenToImage(geometry.Pt(5, 5), s, testImage, testScreen); inside {
		t.Error("far corner should map outside the image")
	}
}

func TestZoomThenPanScenario(t *testing.T) {
	// Load a 100x100 image, zoom to 2.0 at the screen center, pan by
	// (10, -10): the screen center still maps close to the image center.
	s := NewState(testImage, testScreen)
	center := geometry.Pt(500, 500)

	s = Zoom(s, center, 10, testImage, testScreen) // 1.0 + 10*sensitivity = 2.0
	if math.Abs(s.Zoom-2.0) > 1e-9 {
		t.Fatalf("zoom = %v, want 2.0", s.Zoom)
	}
	s = Pan(s, geometry.Pt(10, -10))

	p, inside := ScreenToImage(center, s, testImage, testScreen)
	if !inside {
		t.Fatal("screen center should map inside the image")
	}
	if math.Abs(p.X-50) > 1.0 || math.Abs(p.Y-50) > 1.0 {
		t.Errorf("screen center maps to %v, want (50, 50) within 1px", p)
	}
}

func TestRoundTrip(t *testing.T) {
	s := NewState(testImage, testScreen)
	s = Zoom(s, geometry.Pt(300, 640), 7, testImage, testScreen)
	s = Pan(s, geometry.Pt(-42, 13))

	for _, p := range []geometry.Point{{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 99.5, Y: 0.5}} {
		screen := ImageToScreen(p, s, testImage, testScreen)
		back, _ := ScreenToImage(screen, s, testImage, testScreen)
		if p.Distance(back) > 1e-9 {
			t.Errorf("round trip %v -> %v -> %v", p, screen, back)
		}
	}
}
