package fractal

// EscapeTime iterates the recurrence of t for the plane point (x, y) and returns the
// iteration at which |z|² first exceeded p.MaxLength, or p.MaxIterations if it never
// did. The result is always in [1, p.MaxIterations]. Types outside the escape time
// family fall back to the Mandelbrot rule.
func EscapeTime(t Type, x float64, y float64, p *Parameters) int {
	switch t {
	case Julia:
		return julia(x, y, p)
	case Manowar:
		return manowar(x, y, p)
	default:
		return mandelbrot(x, y, p)
	}
}

// z0 = 0, c = (x, y)
func mandelbrot(x float64, y float64, p *Parameters) int {
	zx, zy := 0.0, 0.0
	i := 0
	for {
		i++
		zx, zy = zx*zx-zy*zy+x, 2*zx*zy+y
		if !(zx*zx+zy*zy <= p.MaxLength) || i >= p.MaxIterations {
			return i
		}
	}
}

// z0 = (x, y), c = (xFix, yFix)
func julia(x float64, y float64, p *Parameters) int {
	zx, zy := x, y
	i := 0
	for {
		i++
		zx, zy = zx*zx-zy*zy+p.XFix, 2*zx*zy+p.YFix
		if !(zx*zx+zy*zy <= p.MaxLength) || i >= p.MaxIterations {
			return i
		}
	}
}

// The Manowar update divides by both parts of z without a guard. A zero part yields
// NaN or Inf, which fails the escape comparison and counts as escaped.
func manowar(x float64, y float64, p *Parameters) int {
	zx, zy := x, y
	i := 0
	for {
		i++
		zx, zy = zx*zx/zy/10.0-zy*zx*zx/5.0+p.XFix,
			2.1*zx*zy-zy/zx*0.8-0.98*zx+p.YFix
		if !(zx*zx+zy*zy <= p.MaxLength) || i >= p.MaxIterations {
			return i
		}
	}
}
