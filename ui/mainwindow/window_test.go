package mainwindow

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"pixelmask/internal/app"
	pximage "pixelmask/internal/image"
	"pixelmask/internal/quantize"
	"pixelmask/ui/prefs"
)

func newTestWindow(t *testing.T) (*MainWindow, *app.Session) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	session := app.NewSession()
	p := &prefs.Prefs{
		BrushRadius: 25,
		Quantize:    quantize.DefaultParams(),
	}
	return New(a, session, p), session
}

func TestWindowReflectsLoadedImage(t *testing.T) {
	mw, session := newTestWindow(t)

	if got := mw.Title(); got != "PixelMask" {
		t.Errorf("initial title = %q, want PixelMask", got)
	}

	session.SetImage(pximage.NewBuffer(8, 8), "/tmp/photo.png")

	if got := mw.Title(); got != "PixelMask - photo.png" {
		t.Errorf("title = %q after load, want the image basename", got)
	}
	if got := mw.statusBar.Text; got != "8x8  |  zoom 100%  |  brush 25  |  Idle" {
		t.Errorf("status = %q after load", got)
	}
}

func TestMaskToggleRevertsWithoutImage(t *testing.T) {
	mw, _ := newTestWindow(t)

	mw.maskCheck.SetChecked(true)

	if mw.maskCheck.Checked {
		t.Error("mask checkbox must revert when no image is loaded")
	}
	if mw.canvas.Router().Masking() {
		t.Error("masking mode must stay off without an image")
	}
	if got := mw.statusBar.Text; got != "Load an image before masking" {
		t.Errorf("status = %q, want the load-first hint", got)
	}
}

func TestMaskToggleWithImage(t *testing.T) {
	mw, session := newTestWindow(t)
	session.SetImage(pximage.NewBuffer(8, 8), "/tmp/photo.png")

	mw.maskCheck.SetChecked(true)
	if !mw.canvas.Router().Masking() {
		t.Fatal("masking should activate with an image loaded")
	}

	mw.maskCheck.SetChecked(false)
	if mw.canvas.Router().Masking() {
		t.Error("unchecking must deactivate masking")
	}
}

func TestBrushChangeUpdatesPrefs(t *testing.T) {
	mw, session := newTestWindow(t)

	session.SetBrushRadius(40)
	if mw.prefs.BrushRadius != 40 {
		t.Errorf("prefs radius = %v, want 40 after the session change", mw.prefs.BrushRadius)
	}
}
