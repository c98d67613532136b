package export

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"pixelmask/internal/app"
	pximage "pixelmask/internal/image"
	"pixelmask/internal/quantize"
	"pixelmask/pkg/geometry"
)

// stubProcessor records the Process call instead of quantizing.
type stubProcessor struct {
	src    string
	params quantize.Params
	out    string
	err    error
}

func (p *stubProcessor) Process(src string, params quantize.Params) (string, error) {
	p.src = src
	p.params = params
	return p.out, p.err
}

func newSessionWithImage(t *testing.T) (*app.Session, string) {
	t.Helper()
	src := filepath.Join(t.TempDir(), "photo.png")

	buf := pximage.NewBuffer(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			buf.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), A: 255})
		}
	}

	s := app.NewSession()
	s.SetViewport(geometry.Sz(100, 100))
	s.SetImage(buf, src)
	return s, src
}

func TestDerivedFileNaming(t *testing.T) {
	s, src := newSessionWithImage(t)
	s.Mask().Paint(4, 4, 2)
	e := New()

	cases := []struct {
		name   string
		export func(*app.Session) (string, error)
		want   string
	}{
		{"masked", e.MaskedImage, "photo_masked.png"},
		{"unmasked", e.UnmaskedImage, "photo_unmasked.png"},
	}
	for _, tc := range cases {
		path, err := tc.export(s)
		if err != nil {
			t.Fatalf("%s export failed: %v", tc.name, err)
		}
		if got := filepath.Base(path); got != tc.want {
			t.Errorf("%s output = %q, want %q", tc.name, got, tc.want)
		}
		if filepath.Dir(path) != filepath.Dir(src) {
			t.Errorf("%s output written to %q, want beside the source", tc.name, path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s output missing on disk: %v", tc.name, err)
		}

		// The written file must decode back at the source dimensions.
		out, err := pximage.Load(path)
		if err != nil {
			t.Fatalf("reloading %s output: %v", tc.name, err)
		}
		if out.Width() != 8 || out.Height() != 8 {
			t.Errorf("%s output size = %dx%d, want 8x8", tc.name, out.Width(), out.Height())
		}
	}
}

func TestExportWithoutImage(t *testing.T) {
	s := app.NewSession()
	e := New()

	if _, err := e.MaskedImage(s); !errors.Is(err, app.ErrNoImage) {
		t.Errorf("MaskedImage error = %v, want ErrNoImage", err)
	}
	if _, err := e.UnmaskedImage(s); !errors.Is(err, app.ErrNoImage) {
		t.Errorf("UnmaskedImage error = %v, want ErrNoImage", err)
	}
	if _, err := e.ProcessUnmasked(s, quantize.DefaultParams()); !errors.Is(err, app.ErrNoImage) {
		t.Errorf("ProcessUnmasked error = %v, want ErrNoImage", err)
	}
}

func TestProcessUnmaskedFeedsProcessor(t *testing.T) {
	s, src := newSessionWithImage(t)
	stub := &stubProcessor{out: "processed.png"}
	e := &Exporter{Processor: stub}

	params := quantize.DefaultParams()
	params.MaxColors = 4

	out, err := e.ProcessUnmasked(s, params)
	if err != nil {
		t.Fatalf("ProcessUnmasked failed: %v", err)
	}
	if out != "processed.png" {
		t.Errorf("output = %q, want the processor's result", out)
	}
	if want := pximage.DerivedPath(src, "unmasked"); stub.src != want {
		t.Errorf("processor received %q, want the unmasked export %q", stub.src, want)
	}
	if stub.params.MaxColors != 4 {
		t.Errorf("processor params = %+v, want the caller's settings", stub.params)
	}
}

func TestProcessUnmaskedSurfacesToolFailure(t *testing.T) {
	s, _ := newSessionWithImage(t)
	stub := &stubProcessor{err: quantize.ErrToolFailure}
	e := &Exporter{Processor: stub}

	if _, err := e.ProcessUnmasked(s, quantize.DefaultParams()); !errors.Is(err, quantize.ErrToolFailure) {
		t.Errorf("error = %v, want ErrToolFailure surfaced", err)
	}
}
