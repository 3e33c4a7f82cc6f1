package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Trace holds everything a forward pass produced for one sample.
//
// Activations has NumLayers()+1 entries (Activations[0] is the normalized
// input column) and Zs has NumLayers() entries. A Trace is built fresh per
// call and is meant to be handed straight to Backpropagate.
type Trace struct {
	Output      *mat.Dense
	Activations []*mat.Dense
	Zs          []*mat.Dense
}

// PredictOption configures a single Predict call.
type PredictOption func(*predictOptions)

type predictOptions struct {
	guard bool
}

// WithGuard enables or disables the numerical guard for this call.
//
// When enabled, Validate runs after every layer and Predict fails with
// ErrNumericalInstability before returning any output.
func WithGuard(enabled bool) PredictOption {
	return func(o *predictOptions) {
		o.guard = enabled
	}
}

// Scalar wraps v as a 1x1 input or target.
func Scalar(v float64) *mat.Dense {
	return mat.NewDense(1, 1, []float64{v})
}

// Vector wraps values as a 1-D input or target.
func Vector(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), append([]float64(nil), values...))
}

// Predict runs the forward pass.
//
// The input may be a scalar (1x1), a column (n x 1, including *mat.VecDense)
// or a single row (1 x n); it is always normalized to a fresh column. Any
// other shape, or a width different from InputWidth(), panics.
//
// Predict does not mutate the Network.
func (n *Network) Predict(input mat.Matrix, opts ...PredictOption) (*Trace, error) {
	options := &predictOptions{}
	for _, opt := range opts {
		opt(options)
	}

	x := asColumn("Network.Predict", input, n.InputWidth())

	trace := &Trace{
		Activations: make([]*mat.Dense, 0, len(n.weights)+1),
		Zs:          make([]*mat.Dense, 0, len(n.weights)),
	}
	trace.Activations = append(trace.Activations, x)

	for l := range n.weights {
		// z = W·x + b
		var z mat.Dense
		z.Mul(n.weights[l].value, x)
		z.Add(&z, n.biases[l].value)
		trace.Zs = append(trace.Zs, &z)

		x = n.activation.forward(&z)
		trace.Activations = append(trace.Activations, x)

		if options.guard {
			if err := Validate(n.rawWeights(), n.rawBiases(), x, trace.Activations, trace.Zs); err != nil {
				return nil, fmt.Errorf("layer %d: %w", l, err)
			}
		}
	}

	trace.Output = x
	return trace, nil
}

// asColumn copies m into a column of the given height.
func asColumn(op string, m mat.Matrix, want int) *mat.Dense {
	if m == nil {
		panic(fmt.Sprintf("%s: nil input", op))
	}

	r, c := m.Dims()
	var col *mat.Dense
	switch {
	case c == 1:
		col = mat.DenseCopyOf(m)
	case r == 1:
		col = mat.DenseCopyOf(m.T())
	default:
		panic(fmt.Sprintf("%s: expected a scalar, row or column, got shape (%d, %d)", op, r, c))
	}

	if rows, _ := col.Dims(); rows != want {
		panic(fmt.Sprintf("%s: expected width %d, got %d", op, want, rows))
	}
	return col
}
