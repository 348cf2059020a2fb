// Package palette turns iteration counts and revisited pixels into display colours.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSet selects one of the fixed palettes. The zero value behaves like Rainbow.
type ColorSet int

const (
	Rainbow ColorSet = iota + 1
	Shifted
	Pastel
	Banded
)

func (s ColorSet) String() string {
	switch s {
	case Rainbow:
		return "Rainbow"
	case Shifted:
		return "Shifted"
	case Pastel:
		return "Pastel"
	case Banded:
		return "Banded"
	default:
		return fmt.Sprintf("ColorSet(%d)", int(s))
	}
}

func (s ColorSet) Valid() bool {
	return s >= Rainbow && s <= Banded
}

// ParseColorSet accepts a colour set name in any case or its number.
func ParseColorSet(s string) (ColorSet, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && ColorSet(n).Valid() {
		return ColorSet(n), nil
	}
	for c := Rainbow; c <= Banded; c++ {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown colour set %q", s)
}

// hueMapping shapes the ratio iterations/maxIterations before it becomes a hue.
type hueMapping struct {
	Scale      float64
	Offset     float64
	Saturation float64
}

// increment is added to each channel of a revisited pixel, modulo 256.
type increment struct {
	R, G, B uint8
}

var hueMappings = map[ColorSet]hueMapping{
	Rainbow: {Scale: 1.0, Offset: 0.0, Saturation: 1.0},
	Shifted: {Scale: 1.0, Offset: 0.8, Saturation: 1.0},
	Pastel:  {Scale: 5.2, Offset: 0.0, Saturation: 0.4},
	Banded:  {Scale: 10.0, Offset: 0.0, Saturation: 0.8},
}

var increments = map[ColorSet]increment{
	Rainbow: {R: 1, G: 15, B: 30},
	Shifted: {R: 20, G: 15, B: 10},
	Pastel:  {R: 20, G: 1, B: 30},
	Banded:  {R: 1, G: 1, B: 15},
}

// Escaping is the colour of points that reach maxIterations.
var Escaping = color.RGBA{R: 0, G: 0, B: 0, A: 255}

func (s ColorSet) orDefault() ColorSet {
	if s.Valid() {
		return s
	}
	return Rainbow
}

// Hue returns the hue in [0, 1) the colour set assigns to an iteration count below maxIterations.
func (s ColorSet) Hue(iterations int, maxIterations int) float64 {
	m := hueMappings[s.orDefault()]
	h := float64(iterations)/float64(maxIterations)*m.Scale + m.Offset
	return h - math.Floor(h)
}

// IterationColor colours a tile from its iteration count.
func (s ColorSet) IterationColor(iterations int, maxIterations int) color.RGBA {
	if iterations == maxIterations {
		return Escaping
	}
	m := hueMappings[s.orDefault()]
	r, g, b := colorful.Hsv(s.Hue(iterations, maxIterations)*360, m.Saturation, 1.0).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RecolorPixel returns the colour a pixel takes when an orbit visits it again.
func (s ColorSet) RecolorPixel(old color.RGBA) color.RGBA {
	inc := increments[s.orDefault()]
	// uint8 addition wraps modulo 256
	return color.RGBA{R: old.R + inc.R, G: old.G + inc.G, B: old.B + inc.B, A: 255}
}

// Increments exposes the per-channel recolour step of the colour set.
func (s ColorSet) Increments() (r uint8, g uint8, b uint8) {
	inc := increments[s.orDefault()]
	return inc.R, inc.G, inc.B
}
