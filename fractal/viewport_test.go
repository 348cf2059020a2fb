package fractal

import (
	"errors"
	"image"
	"math"
	"testing"
)

func closeTo(a float64, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestZoomRoundTrip(t *testing.T) {
	rectangles := []image.Rectangle{
		image.Rect(20, 10, 120, 60),
		image.Rect(0, 0, 200, 100),
		image.Rect(199, 99, 200, 100),
		image.Rect(-50, -20, 250, 130),
	}
	for _, r := range rectangles {
		p := smallMandelbrot()
		before := p

		if err := p.ZoomIn(r); err != nil {
			t.Fatalf("ZoomIn(%v): %s", r, err)
		}
		if err := p.ZoomOut(r); err != nil {
			t.Fatalf("ZoomOut(%v): %s", r, err)
		}
		if !closeTo(p.XMin, before.XMin) || !closeTo(p.XMax, before.XMax) || !closeTo(p.YMin, before.YMin) || !closeTo(p.YMax, before.YMax) {
			t.Errorf("zoom in and out of %v gave [%g, %g] x [%g, %g], want [%g, %g] x [%g, %g]", r,
				p.XMin, p.XMax, p.YMin, p.YMax, before.XMin, before.XMax, before.YMin, before.YMax)
		}
	}
}

func TestZoomInBounds(t *testing.T) {
	p := smallMandelbrot()
	// the right half of the bottom half
	if err := p.ZoomIn(image.Rect(100, 50, 200, 100)); err != nil {
		t.Fatal(err)
	}
	if !closeTo(p.XMin, -0.65) || !closeTo(p.XMax, 1.2) || !closeTo(p.YMin, -2) || !closeTo(p.YMax, 0) {
		t.Errorf("got [%g, %g] x [%g, %g], want [-0.65, 1.2] x [-2, 0]", p.XMin, p.XMax, p.YMin, p.YMax)
	}
}

func TestZoomNormalisesRectangle(t *testing.T) {
	reversed := image.Rectangle{Min: image.Pt(120, 60), Max: image.Pt(20, 10)}
	a, b := smallMandelbrot(), smallMandelbrot()
	if err := a.ZoomIn(reversed); err != nil {
		t.Fatal(err)
	}
	if err := b.ZoomIn(image.Rect(20, 10, 120, 60)); err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("a reversed drag zoomed to [%g, %g] x [%g, %g], want [%g, %g] x [%g, %g]",
			a.XMin, a.XMax, a.YMin, a.YMax, b.XMin, b.XMax, b.YMin, b.YMax)
	}
}

func TestZoomRejectsDegenerateRectangle(t *testing.T) {
	for _, r := range []image.Rectangle{image.Rect(5, 5, 5, 20), image.Rect(5, 5, 40, 5), {}} {
		p := smallMandelbrot()
		before := p
		if err := p.ZoomIn(r); !errors.Is(err, ErrDegenerateZoom) {
			t.Errorf("ZoomIn(%v) = %v, want %v", r, err, ErrDegenerateZoom)
		}
		if err := p.ZoomOut(r); !errors.Is(err, ErrDegenerateZoom) {
			t.Errorf("ZoomOut(%v) = %v, want %v", r, err, ErrDegenerateZoom)
		}
		if p != before {
			t.Errorf("a rejected zoom changed the parameters")
		}
	}
}

func TestSetFixPoint(t *testing.T) {
	p := smallMandelbrot()
	p.SetFixPoint(0, 0)
	if p.XFix != p.XMin || p.YFix != p.YMax {
		t.Errorf("SetFixPoint(0, 0) = (%g, %g), want (%g, %g)", p.XFix, p.YFix, p.XMin, p.YMax)
	}
	p.SetFixPoint(100, 50)
	if !closeTo(p.XFix, -0.65) || !closeTo(p.YFix, 0) {
		t.Errorf("SetFixPoint(100, 50) = (%g, %g), want (-0.65, 0)", p.XFix, p.YFix)
	}
}

func TestPlaneToPixel(t *testing.T) {
	p := smallMandelbrot()
	tests := []struct {
		x, y   float64
		px, py int
		ok     bool
	}{
		{0, 0, 135, 50, true},
		{-2.5, 1.99, 0, 1, true},
		{1.19, -1.99, 199, 100, false}, // the bottom row maps below the image
		{-2.5, -1.9, 0, 98, true},
		{1.3, 0, 0, 0, false},
		{-3, 0, 0, 0, false},
		{0, 2.5, 0, 0, false},
		{math.NaN(), 0, 0, 0, false},
		{0, math.Inf(1), 0, 0, false},
	}
	for _, tt := range tests {
		px, py, ok := p.PlaneToPixel(tt.x, tt.y)
		if ok != tt.ok || (ok && (px != tt.px || py != tt.py)) {
			t.Errorf("PlaneToPixel(%g, %g) = (%d, %d, %t), want (%d, %d, %t)", tt.x, tt.y, px, py, ok, tt.px, tt.py, tt.ok)
		}
	}
}

func TestResize(t *testing.T) {
	p := smallMandelbrot()
	if err := p.Resize(1024, 768); err != nil || p.SizeX != 1024 || p.SizeY != 768 {
		t.Errorf("Resize(1024, 768) = %v, size %dx%d", err, p.SizeX, p.SizeY)
	}
	for _, size := range [][2]int{{0, 10}, {10, -1}, {math.MaxInt16 + 1, 10}} {
		if err := p.Resize(size[0], size[1]); err == nil {
			t.Errorf("Resize(%d, %d) succeeded", size[0], size[1])
		}
	}
	if p.SizeX != 1024 || p.SizeY != 768 {
		t.Errorf("a rejected resize changed the size to %dx%d", p.SizeX, p.SizeY)
	}
}
