package fractal

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMalformedField = errors.New("malformed field value")
	ErrUnknownField   = errors.New("unknown field")
)

type fieldSetter func(p *Parameters, text string) error

func floatField(get func(p *Parameters) *float64) fieldSetter {
	return func(p *Parameters, text string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a decimal", ErrMalformedField, text)
		}
		*get(p) = v
		return nil
	}
}

func intField(get func(p *Parameters) *int) fieldSetter {
	return func(p *Parameters, text string) error {
		v, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrMalformedField, text)
		}
		*get(p) = v
		return nil
	}
}

func int64Field(get func(p *Parameters) *int64) fieldSetter {
	return func(p *Parameters, text string) error {
		v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrMalformedField, text)
		}
		*get(p) = v
		return nil
	}
}

func boolField(get func(p *Parameters) *bool) fieldSetter {
	return func(p *Parameters, text string) error {
		v, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", ErrMalformedField, text)
		}
		*get(p) = v
		return nil
	}
}

var fields = map[string]fieldSetter{
	"sizeX":         intField(func(p *Parameters) *int { return &p.SizeX }),
	"sizeY":         intField(func(p *Parameters) *int { return &p.SizeY }),
	"xMin":          floatField(func(p *Parameters) *float64 { return &p.XMin }),
	"xMax":          floatField(func(p *Parameters) *float64 { return &p.XMax }),
	"yMin":          floatField(func(p *Parameters) *float64 { return &p.YMin }),
	"yMax":          floatField(func(p *Parameters) *float64 { return &p.YMax }),
	"xFix":          floatField(func(p *Parameters) *float64 { return &p.XFix }),
	"yFix":          floatField(func(p *Parameters) *float64 { return &p.YFix }),
	"maxLength":     floatField(func(p *Parameters) *float64 { return &p.MaxLength }),
	"maxIterations": intField(func(p *Parameters) *int { return &p.MaxIterations }),
	"xStart":        floatField(func(p *Parameters) *float64 { return &p.XStart }),
	"yStart":        floatField(func(p *Parameters) *float64 { return &p.YStart }),
	"aFix":          floatField(func(p *Parameters) *float64 { return &p.AFix }),
	"bFix":          floatField(func(p *Parameters) *float64 { return &p.BFix }),
	"aJFix":         floatField(func(p *Parameters) *float64 { return &p.AJFix }),
	"bJFix":         floatField(func(p *Parameters) *float64 { return &p.BJFix }),
	"cJFix":         floatField(func(p *Parameters) *float64 { return &p.CJFix }),
	"range":         int64Field(func(p *Parameters) *int64 { return &p.Range }),
	"sleep":         intField(func(p *Parameters) *int { return &p.Sleep }),
	"count":         int64Field(func(p *Parameters) *int64 { return &p.Count }),
	"infiniteLoop":  boolField(func(p *Parameters) *bool { return &p.InfiniteLoop }),
}

var ifsCell = regexp.MustCompile(`^([a-f])\[([0-5])\]$`)

func (p *Parameters) ifsColumn(name string) *[IFSSlots]float64 {
	switch name {
	case "a":
		return &p.A
	case "b":
		return &p.B
	case "c":
		return &p.C
	case "d":
		return &p.D
	case "e":
		return &p.E
	default:
		return &p.F
	}
}

// SetField parses text into the named field, e.g. "xMin" or the IFS cell "d[3]".
// On error the parameters are left unchanged.
func (p *Parameters) SetField(name string, text string) error {
	if m := ifsCell.FindStringSubmatch(name); m != nil {
		index, _ := strconv.Atoi(m[2])
		column := m[1]
		return floatField(func(p *Parameters) *float64 { return &p.ifsColumn(column)[index] })(p, text)
	}
	setter, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return setter(p, text)
}

// FieldNames lists the names SetField accepts, IFS cells excluded.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
