// Package dataset generates the synthetic regression data used by the CLI
// and the regression demo, and scales it into the range the trainer expects.
package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Slope is the coefficient of the generated target: y = Slope * x.
const Slope = 100.0

// ErrEmpty is returned when scaling an empty series.
var ErrEmpty = errors.New("dataset: empty series")

// Generate draws n samples x ~ U[0, 1) and returns them with y = Slope * x.
//
// A nil rng uses the global source.
func Generate(n int, rng *rand.Rand) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := range xs {
		if rng != nil {
			xs[i] = rng.Float64()
		} else {
			xs[i] = rand.Float64() //nolint:gosec // Synthetic data, not security-critical
		}
		ys[i] = xs[i] * Slope
	}
	return xs, ys
}

// MinMaxScale maps every value v to (v - min) / (max - min).
//
// Returns a new slice. min == max is rejected since it would divide by zero.
func MinMaxScale(data []float64, min, max float64) ([]float64, error) {
	if max == min {
		return nil, fmt.Errorf("dataset: degenerate range [%g, %g]", min, max)
	}
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = (v - min) / (max - min)
	}
	return out, nil
}

// Bounds returns the shared scaling range for inputs and targets:
// [min(0, min(ys)), max(1, max(ys))]. Inputs are assumed to lie in [0, 1].
func Bounds(ys []float64) (lo, hi float64, err error) {
	if len(ys) == 0 {
		return 0, 0, ErrEmpty
	}
	return min(0, floats.Min(ys)), max(1, floats.Max(ys)), nil
}

// ScaleJoint scales xs and ys with the same Bounds(ys) range so the
// input/target relationship keeps its slope.
func ScaleJoint(xs, ys []float64) (xScaled, yScaled []float64, err error) {
	lo, hi, err := Bounds(ys)
	if err != nil {
		return nil, nil, err
	}
	if xScaled, err = MinMaxScale(xs, lo, hi); err != nil {
		return nil, nil, err
	}
	if yScaled, err = MinMaxScale(ys, lo, hi); err != nil {
		return nil, nil, err
	}
	return xScaled, yScaled, nil
}

// Columns wraps each scalar as a 1x1 matrix for train.Trainer.Fit.
func Columns(values []float64) []mat.Matrix {
	out := make([]mat.Matrix, len(values))
	for i, v := range values {
		out[i] = mat.NewDense(1, 1, []float64{v})
	}
	return out
}
