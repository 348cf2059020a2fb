package fractal

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParameters = errors.New("invalid parameters")

// IFSSlots is the number of affine transforms stored for an iterated function system.
const IFSSlots = 6

// Parameters is the complete numeric configuration of a render. The UI side keeps
// one mutable copy and hands renders a copy by value (see Snapshot), so a running
// render never observes later edits.
type Parameters struct {
	// Viewport
	SizeX int     `json:"sizeX"`
	SizeY int     `json:"sizeY"`
	XMin  float64 `json:"xMin"`
	XMax  float64 `json:"xMax"`
	YMin  float64 `json:"yMin"`
	YMax  float64 `json:"yMax"`

	// Escape time
	XFix          float64 `json:"xFix"`
	YFix          float64 `json:"yFix"`
	MaxLength     float64 `json:"maxLength"`
	MaxIterations int     `json:"maxIterations"`

	// Orbits
	XStart                  float64 `json:"xStart"`
	YStart                  float64 `json:"yStart"`
	AFix                    float64 `json:"aFix"`
	BFix                    float64 `json:"bFix"`
	AJFix                   float64 `json:"aJFix"`
	BJFix                   float64 `json:"bJFix"`
	CJFix                   float64 `json:"cJFix"`
	Range                   int64   `json:"range"`
	Sleep                   int     `json:"sleep"`
	Count                   int64   `json:"count"`
	InfiniteLoop            bool    `json:"infiniteLoop"`
	InfiniteLoopInterrupted bool    `json:"infiniteLoopInterrupted"`

	// IFS transform k maps (x, y) to (A[k]x + B[k]y + E[k], C[k]x + D[k]y + F[k])
	A [IFSSlots]float64 `json:"a"`
	B [IFSSlots]float64 `json:"b"`
	C [IFSSlots]float64 `json:"c"`
	D [IFSSlots]float64 `json:"d"`
	E [IFSSlots]float64 `json:"e"`
	F [IFSSlots]float64 `json:"f"`

	CurrentFractalType Type `json:"currentFractalType"`
	SelectedColorSet   int  `json:"selectedColorSet"`
}

// MaxSize bounds both image dimensions.
const MaxSize = math.MaxInt16

// NewParameters returns the start-up parameters: Mandelbrot with the first colour set.
func NewParameters() Parameters {
	p := Parameters{
		CurrentFractalType: Mandelbrot,
		SelectedColorSet:   1,
	}
	p.SetDefaults(Mandelbrot)
	return p
}

// SetDefaults resets every numeric field, then applies the viewport of t. The
// fractal type and colour set selections are left alone.
func (p *Parameters) SetDefaults(t Type) {
	p.SizeX = 800
	p.SizeY = 600

	p.MaxLength = 10.0
	p.MaxIterations = 100
	p.XFix = -0.5
	p.YFix = -0.6
	p.XMin, p.XMax, p.YMin, p.YMax = -2.5, 1.2, -2.0, 2.0

	p.XStart = -0.1
	p.YStart = 0.0
	p.AFix = 1.0
	p.BFix = 1.0
	p.Range = 10000000
	p.Sleep = 100
	p.Count = 1000000
	p.InfiniteLoop = true
	p.InfiniteLoopInterrupted = false

	p.AJFix = 150
	p.BJFix = 0.21
	p.CJFix = 100

	p.A = [IFSSlots]float64{0.0, 0.2, -0.15, 0.85, 0.8, 0.8}
	p.B = [IFSSlots]float64{0.0, -0.26, 0.28, 0.04, 0.1, 0.1}
	p.C = [IFSSlots]float64{0.0, 0.23, 0.26, -0.04, -0.1, -0.1}
	p.D = [IFSSlots]float64{0.16, 0.22, 0.24, 0.85, 0.6, 0.6}
	p.E = [IFSSlots]float64{0.0, 0.0, 0.0, 0.0, 0.1, 0.1}
	p.F = [IFSSlots]float64{0.0, 1.6, 0.44, 1.6, 0.1, 0.1}

	if v, ok := defaultViewports[t]; ok {
		p.XMin, p.XMax, p.YMin, p.YMax = v.XMin, v.XMax, v.YMin, v.YMax
	}
}

// Snapshot returns an independent copy for a render to read.
func (p *Parameters) Snapshot() Parameters {
	return *p
}

// Verify checks the invariants a render depends on.
func (p *Parameters) Verify() error {
	var errs []error
	if p.SizeX <= 0 || p.SizeY <= 0 || p.SizeX > MaxSize || p.SizeY > MaxSize {
		errs = append(errs, fmt.Errorf("size must be between 1 and %d, got %dx%d", MaxSize, p.SizeX, p.SizeY))
	}
	if !(p.XMax > p.XMin) {
		errs = append(errs, fmt.Errorf("xMax %g must be greater than xMin %g", p.XMax, p.XMin))
	}
	if !(p.YMax > p.YMin) {
		errs = append(errs, fmt.Errorf("yMax %g must be greater than yMin %g", p.YMax, p.YMin))
	}
	if p.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("maxIterations must be positive, got %d", p.MaxIterations))
	}
	if p.Sleep < 0 {
		errs = append(errs, fmt.Errorf("sleep must not be negative, got %d", p.Sleep))
	}
	for _, v := range []float64{p.XMin, p.XMax, p.YMin, p.YMax} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			errs = append(errs, fmt.Errorf("viewport bound %g is not finite", v))
			break
		}
	}
	if !p.CurrentFractalType.Valid() {
		errs = append(errs, fmt.Errorf("unknown fractal type %d", int(p.CurrentFractalType)))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, errors.Join(errs...))
	}
	return nil
}
