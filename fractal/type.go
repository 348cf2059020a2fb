package fractal

import (
	"fmt"
	"strings"
)

// Type selects the evaluator and the default viewport. The numbering is the one
// stored in parameter files.
type Type int

const (
	Mandelbrot Type = iota + 1
	Julia
	IFS
	NonLinear
	Jumper
	Manowar
)

var typeNames = map[Type]string{
	Mandelbrot: "Mandelbrot",
	Julia:      "Julia",
	IFS:        "IFS",
	NonLinear:  "NonLinear",
	Jumper:     "Jumper",
	Manowar:    "Manowar",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// Family tells which renderer drives the type.
type Family int

const (
	EscapeTimeFamily Family = iota
	OrbitFamily
)

func (f Family) String() string {
	return []string{
		"EscapeTime", "Orbit",
	}[f]
}

func (t Type) Family() Family {
	switch t {
	case IFS, NonLinear, Jumper:
		return OrbitFamily
	default:
		return EscapeTimeFamily
	}
}

// ParseType accepts a type name in any case or its number.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for t, name := range typeNames {
		if strings.EqualFold(name, s) || fmt.Sprint(int(t)) == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown fractal type %q", s)
}
