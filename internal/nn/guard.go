package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Validate checks every entry of the weights, biases, the current activation
// x and the stored activations and pre-activations, in that order.
//
// Returns an *InstabilityError (matching ErrNumericalInstability) for the
// first NaN or ±Inf found, or nil when everything is finite.
func Validate(weights, biases []*mat.Dense, x *mat.Dense, activations, zs []*mat.Dense) error {
	groups := []struct {
		name string
		ms   []*mat.Dense
	}{
		{"weights", weights},
		{"biases", biases},
		{"x", []*mat.Dense{x}},
		{"activations", activations},
		{"zs", zs},
	}

	for _, g := range groups {
		for i, m := range g.ms {
			if m == nil {
				continue
			}
			if row, col, v, ok := firstNonFinite(m); ok {
				return &InstabilityError{Group: g.name, Index: i, Row: row, Col: col, Value: v}
			}
		}
	}
	return nil
}

func firstNonFinite(m *mat.Dense) (row, col int, v float64, found bool) {
	raw := m.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		for j, v := range raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return i, j, v, true
			}
		}
	}
	return 0, 0, 0, false
}
