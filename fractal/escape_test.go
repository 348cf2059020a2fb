package fractal

import (
	"math"
	"testing"
)

func smallMandelbrot() Parameters {
	p := NewParameters()
	p.SizeX, p.SizeY = 200, 100
	p.XMin, p.XMax, p.YMin, p.YMax = -2.5, 1.2, -2, 2
	p.MaxIterations = 100
	p.MaxLength = 10
	return p
}

func TestMandelbrotEscapesImmediatelyOutsideRadius(t *testing.T) {
	p := smallMandelbrot()
	points := [][2]float64{{-2.5, 2}, {3, 0}, {0, -3.2}, {-3.2, -0.1}, {100, 100}}
	for _, point := range points {
		if point[0]*point[0]+point[1]*point[1] <= p.MaxLength {
			t.Fatalf("test point %v is inside the escape radius", point)
		}
		if it := EscapeTime(Mandelbrot, point[0], point[1], &p); it != 1 {
			t.Errorf("EscapeTime(Mandelbrot, %g, %g) = %d, want 1", point[0], point[1], it)
		}
	}
}

func TestEscapeTimeStaysInRange(t *testing.T) {
	for _, fractalType := range []Type{Mandelbrot, Julia, Manowar} {
		p := smallMandelbrot()
		p.CurrentFractalType = fractalType
		for py := 0; py < p.SizeY; py += 3 {
			for px := 0; px < p.SizeX; px += 3 {
				x, y := p.PixelToPlane(px, py)
				it := EscapeTime(fractalType, x, y, &p)
				if it < 1 || it > p.MaxIterations {
					t.Fatalf("EscapeTime(%s, %g, %g) = %d, want a value in [1, %d]", fractalType, x, y, it, p.MaxIterations)
				}
			}
		}
	}
}

func TestEscapeTimeEndToEnd(t *testing.T) {
	p := smallMandelbrot()

	x, y := p.PixelToPlane(0, 0)
	if x != -2.5 || y != 2 {
		t.Errorf("PixelToPlane(0, 0) = (%g, %g), want (-2.5, 2)", x, y)
	}
	if it := EscapeTime(Mandelbrot, x, y, &p); it != 1 {
		t.Errorf("pixel (0, 0) escaped after %d iterations, want 1", it)
	}

	px, py, ok := p.PlaneToPixel(0, 0)
	if !ok || px != 135 || py != 50 {
		t.Fatalf("PlaneToPixel(0, 0) = (%d, %d, %t), want (135, 50, true)", px, py, ok)
	}
	x, y = p.PixelToPlane(px, py)
	if it := EscapeTime(Mandelbrot, x, y, &p); it != p.MaxIterations {
		t.Errorf("pixel (%d, %d) at (%g, %g) escaped after %d iterations, want %d", px, py, x, y, it, p.MaxIterations)
	}
}

func TestJuliaUsesFixPoint(t *testing.T) {
	p := smallMandelbrot()
	p.XFix, p.YFix = 0, 0
	// with c = 0 the unit disc is the filled Julia set
	if it := EscapeTime(Julia, 0.5, 0.5, &p); it != p.MaxIterations {
		t.Errorf("EscapeTime(Julia, 0.5, 0.5) = %d, want %d", it, p.MaxIterations)
	}
	if it := EscapeTime(Julia, 1.5, 1.5, &p); it == p.MaxIterations {
		t.Errorf("EscapeTime(Julia, 1.5, 1.5) did not escape")
	}
}

func TestManowarDivisionByZeroEscapes(t *testing.T) {
	p := smallMandelbrot()
	tests := []struct {
		x, y float64
	}{
		{0.5, 0}, // x²/0 is +Inf
		{0, 0},   // 0/0 is NaN
		{-1, 0},
	}
	for _, tt := range tests {
		if it := EscapeTime(Manowar, tt.x, tt.y, &p); it != 1 {
			t.Errorf("EscapeTime(Manowar, %g, %g) = %d, want 1", tt.x, tt.y, it)
		}
	}
}

func TestEscapeTimeMaxIterationsOne(t *testing.T) {
	p := smallMandelbrot()
	p.MaxIterations = 1
	if it := EscapeTime(Mandelbrot, 0, 0, &p); it != 1 {
		t.Errorf("EscapeTime with maxIterations 1 = %d, want 1", it)
	}
}

func TestEscapeTimeNaNInput(t *testing.T) {
	p := smallMandelbrot()
	if it := EscapeTime(Mandelbrot, math.NaN(), 0, &p); it != 1 {
		t.Errorf("EscapeTime(NaN) = %d, want 1", it)
	}
}
