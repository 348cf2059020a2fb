package fractal

import "fmt"

// Viewport is a rectangle of the real plane.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

var defaultViewports = map[Type]Viewport{
	Mandelbrot: {XMin: -2.5, XMax: 1.2, YMin: -2.0, YMax: 2.0},
	Julia:      {XMin: -2.5, XMax: 1.2, YMin: -2.0, YMax: 2.0},
	Manowar:    {XMin: -2.5, XMax: 1.2, YMin: -2.0, YMax: 2.0},
	NonLinear:  {XMin: -5, XMax: 9, YMin: -5, YMax: 9},
	IFS:        {XMin: -4, XMax: 4, YMin: -2, YMax: 12},
	Jumper:     {XMin: -200, XMax: 350, YMin: -200, YMax: 300},
}

// JumperPreset is a named starting point for the Jumper map.
type JumperPreset struct {
	Name       string
	Viewport   Viewport
	AJ, BJ, CJ float64
	Sleep      int // zero keeps the default
}

var JumperPresets = []JumperPreset{
	{Name: "Tubes Symmetric", Viewport: Viewport{-600, 60, -500, 500}, AJ: 50, BJ: 0.21, CJ: 100},
	{Name: "Carpet Tiled", Viewport: Viewport{-200, 350, -200, 300}, AJ: 150, BJ: 0.21, CJ: 100},
	{Name: "Carpet Endless", Viewport: Viewport{-200, 350, -200, 300}, AJ: 250, BJ: 0.21, CJ: 100},
	{Name: "Raindrops from Right", Viewport: Viewport{-200, 0, -200, 0}, AJ: 350, BJ: 0.21, CJ: 100, Sleep: 10},
	{Name: "Flower 1", Viewport: Viewport{-4, 4, -4, 4}, AJ: 0.01, BJ: -0.03, CJ: 0.003},
	{Name: "Insect", Viewport: Viewport{-3, 3, -3, 3}, AJ: 0.4, BJ: 1, CJ: 0},
	{Name: "Stem 1", Viewport: Viewport{-300, 50, -200, 300}, AJ: 500, BJ: 0.833, CJ: 110},
	{Name: "Stem 2", Viewport: Viewport{-300, 50, -200, 300}, AJ: 500, BJ: 0.912341234, CJ: 110},
}

// ApplyJumperPreset resets the parameters to the Jumper defaults and applies preset index.
func (p *Parameters) ApplyJumperPreset(index int) error {
	if index < 0 || index >= len(JumperPresets) {
		return fmt.Errorf("jumper preset %d out of range [0, %d)", index, len(JumperPresets))
	}
	preset := JumperPresets[index]
	p.SetDefaults(Jumper)
	p.XMin, p.XMax, p.YMin, p.YMax = preset.Viewport.XMin, preset.Viewport.XMax, preset.Viewport.YMin, preset.Viewport.YMax
	p.AJFix, p.BJFix, p.CJFix = preset.AJ, preset.BJ, preset.CJ
	if preset.Sleep > 0 {
		p.Sleep = preset.Sleep
	}
	return nil
}
