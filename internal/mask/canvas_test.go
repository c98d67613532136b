package mask

import "testing"

func countMasked(c *Canvas) int {
	n := 0
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.IsMasked(x, y) {
				n++
			}
		}
	}
	return n
}

func TestPaintMarksDisk(t *testing.T) {
	c := New(64, 64)
	c.Paint(32, 32, 10)

	if !c.IsMasked(32, 32) {
		t.Error("center cell should be masked")
	}
	if c.IsMasked(0, 0) {
		t.Error("far corner should not be masked")
	}
	if c.IsMasked(32, 50) {
		t.Error("cell outside the radius should not be masked")
	}
	if !c.IsMasked(32, 40) {
		t.Error("cell inside the radius should be masked")
	}
}

func TestPaintedAlphaIsConstant(t *testing.T) {
	c := New(32, 32)
	c.Paint(16, 16, 5)
	c.Paint(16, 16, 5)
	c.Paint(17, 16, 5)

	if got := c.AlphaAt(16, 16); got != PaintedAlpha {
		t.Errorf("alpha = %d after overlapping strokes, want constant %d", got, PaintedAlpha)
	}
}

func TestPaintThenEraseLeavesNothing(t *testing.T) {
	cases := []struct {
		cx, cy, r float64
	}{
		{32, 32, 10},
		{0, 0, 5},
		{63.5, 63.5, 8},
		{10, 10, 0.3}, // below the radius floor
	}
	for _, tc := range cases {
		c := New(64, 64)
		c.Paint(tc.cx, tc.cy, tc.r)
		c.Erase(tc.cx, tc.cy, tc.r)
		if n := countMasked(c); n != 0 {
			t.Errorf("paint(%v,%v,%v)+erase left %d residual cells", tc.cx, tc.cy, tc.r, n)
		}
	}
}

func TestClearIdempotent(t *testing.T) {
	c := New(16, 16)
	c.Paint(8, 8, 4)

	c.Clear()
	if n := countMasked(c); n != 0 {
		t.Fatalf("clear left %d masked cells", n)
	}
	c.Clear()
	if n := countMasked(c); n != 0 {
		t.Fatalf("second clear left %d masked cells", n)
	}
}

func TestRadiusFloor(t *testing.T) {
	c := New(32, 32)
	c.Paint(10, 10, 0.1)
	if countMasked(c) == 0 {
		t.Error("a click with a sub-pixel radius must still affect at least one cell")
	}
}

func TestPaintClipsAtBounds(t *testing.T) {
	c := New(32, 32)
	c.Paint(0, 0, 10)
	c.Paint(-5, -5, 10)
	c.Paint(100, 100, 10) // fully outside, must not panic or write

	if !c.IsMasked(0, 0) {
		t.Error("corner cell should be masked by an edge stroke")
	}
	if c.IsMasked(31, 31) {
		t.Error("opposite corner should be untouched")
	}
}

func TestOutOfRangeQueries(t *testing.T) {
	c := New(8, 8)
	c.Paint(4, 4, 10)

	if c.IsMasked(-1, 0) || c.IsMasked(0, -1) || c.IsMasked(8, 0) || c.IsMasked(0, 8) {
		t.Error("out-of-range cells must never report as masked")
	}
	if c.AlphaAt(99, 99) != 0 {
		t.Error("out-of-range alpha must be zero")
	}
}

func TestImageSharesStorage(t *testing.T) {
	c := New(8, 8)
	img := c.Image()
	c.Paint(4, 4, 2)

	if img.AlphaAt(4, 4).A != PaintedAlpha {
		t.Error("alpha view should reflect canvas mutations")
	}
	if got := img.Bounds().Dx(); got != 8 {
		t.Errorf("alpha view width = %d, want 8", got)
	}
}
