package fractal

import "math"

// WeightedSlots is how many IFS transforms take part in the weighted draw. Only the
// first four of the six stored slots are weighted and selectable.
const WeightedSlots = 4

// degenerateWeight stands in for a transform whose linear part has zero determinant.
const degenerateWeight = 0.01

// Weights holds the cumulative, normalised selection weights of the IFS transforms.
type Weights [WeightedSlots]float64

// NewWeights derives the weights from the transform determinants |a·d - b·c|.
func NewWeights(p *Parameters) Weights {
	var w Weights
	sum := 0.0
	for k := 0; k < WeightedSlots; k++ {
		area := math.Abs(p.A[k]*p.D[k] - p.B[k]*p.C[k])
		if area > 0 {
			sum += area
		} else {
			sum += degenerateWeight
		}
		w[k] = sum
	}
	for k := range w {
		w[k] /= sum
	}
	return w
}

// Pick returns the smallest k with w[k] >= draw.
func (w *Weights) Pick(draw float64) int {
	for k := 0; k < WeightedSlots-1; k++ {
		if draw <= w[k] {
			return k
		}
	}
	return WeightedSlots - 1
}

// Next computes the point after (x, y) on the orbit of t. draw supplies uniform
// values in [0, 1) for the IFS transform choice and is not called for other types.
// Types outside the orbit family fall back to the non-linear map.
func Next(t Type, x float64, y float64, p *Parameters, w *Weights, draw func() float64) (float64, float64) {
	switch t {
	case IFS:
		k := w.Pick(draw())
		return p.A[k]*x + p.B[k]*y + p.E[k], p.C[k]*x + p.D[k]*y + p.F[k]
	case Jumper:
		return y + sign(x)*math.Sqrt(math.Abs(p.BJFix*x-p.CJFix)), p.AJFix - x
	default:
		return math.Abs(x) - p.BFix*y + p.AFix, x
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
