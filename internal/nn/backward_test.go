package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/nn"
)

func TestBackpropagate_SingleLayer(t *testing.T) {
	// W = 2, b = 0, x = 3, y = 10: prediction 6, loss 16.
	net := newFixed(t, []int{1, 1},
		[]*mat.Dense{mat.NewDense(1, 1, []float64{2})},
		[]*mat.Dense{mat.NewDense(1, 1, []float64{0})})

	trace, err := net.Predict(nn.Scalar(3))
	require.NoError(t, err)
	assert.InDelta(t, 16.0, nn.MSE(nn.Scalar(10), trace.Output), 1e-12)

	grads := net.Backpropagate(nn.Scalar(10), trace)
	require.Len(t, grads.Weights, 1)
	require.Len(t, grads.Biases, 1)
	assert.InDelta(t, -24.0, grads.Weights[0].At(0, 0), 1e-12)
	assert.InDelta(t, -8.0, grads.Biases[0].At(0, 0), 1e-12)
}

func TestBackpropagate_Shapes(t *testing.T) {
	layers := []int{3, 5, 4, 2}
	net, err := nn.NewNetwork(layers, nn.WithSeed(5), nn.WithActivation(nn.ReLU))
	require.NoError(t, err)

	trace, err := net.Predict(nn.Vector(0.5, -0.1, 0.9))
	require.NoError(t, err)
	grads := net.Backpropagate(nn.Vector(1, 0), trace)

	weights := net.Weights()
	for l := range weights {
		wr, wc := weights[l].Dims()
		gr, gc := grads.Weights[l].Dims()
		assert.Equal(t, wr, gr, "layer %d", l)
		assert.Equal(t, wc, gc, "layer %d", l)

		br, bc := grads.Biases[l].Dims()
		assert.Equal(t, layers[l+1], br, "layer %d", l)
		assert.Equal(t, 1, bc, "layer %d", l)
	}

	flat := grads.Flatten()
	params := net.Parameters()
	require.Len(t, flat, len(params))
	for i := range flat {
		pr, pc := params[i].Dims()
		fr, fc := flat[i].Dims()
		assert.Equal(t, pr, fr, params[i].Name())
		assert.Equal(t, pc, fc, params[i].Name())
	}
}

func TestBackpropagate_HiddenDeltaSkipsDerivative(t *testing.T) {
	// Hidden unit is inactive (z = -1) under ReLU; its delta is still W1ᵀ·delta.
	net := newFixed(t, []int{1, 1, 1},
		[]*mat.Dense{mat.NewDense(1, 1, []float64{-1}), mat.NewDense(1, 1, []float64{3})},
		[]*mat.Dense{mat.NewDense(1, 1, nil), mat.NewDense(1, 1, []float64{1})},
		nn.WithActivation(nn.ReLU))

	trace, err := net.Predict(nn.Scalar(1))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, trace.Output.At(0, 0), 1e-12)

	grads := net.Backpropagate(nn.Scalar(0), trace)
	// Output delta = 2 * (1 - 0) * relu'(1) = 2.
	assert.InDelta(t, 2.0, grads.Biases[1].At(0, 0), 1e-12)
	assert.InDelta(t, 0.0, grads.Weights[1].At(0, 0), 1e-12, "hidden activation is 0")
	// Hidden delta = 3 * 2 = 6, not multiplied by relu'(-1) = 0.
	assert.InDelta(t, 6.0, grads.Biases[0].At(0, 0), 1e-12)
	assert.InDelta(t, 6.0, grads.Weights[0].At(0, 0), 1e-12)
}

func TestBackpropagate_MatchesNumericalGradient(t *testing.T) {
	// With Identity the simplified rule is the exact gradient.
	net, err := nn.NewNetwork([]int{2, 3, 1}, nn.WithSeed(9))
	require.NoError(t, err)

	x := nn.Vector(0.3, -0.7)
	y := nn.Scalar(0.5)
	trace, err := net.Predict(x)
	require.NoError(t, err)
	grads := net.Backpropagate(y, trace).Flatten()

	const h = 1e-6
	for i, p := range net.Parameters() {
		r, c := p.Dims()
		for row := 0; row < r; row++ {
			for col := 0; col < c; col++ {
				orig := p.Value().At(row, col)

				p.Value().Set(row, col, orig+h)
				up, err := net.Predict(x)
				require.NoError(t, err)
				p.Value().Set(row, col, orig-h)
				down, err := net.Predict(x)
				require.NoError(t, err)
				p.Value().Set(row, col, orig)

				numeric := (nn.MSE(y, up.Output) - nn.MSE(y, down.Output)) / (2 * h)
				assert.InDelta(t, numeric, grads[i].At(row, col), 1e-5, "%s[%d,%d]", p.Name(), row, col)
			}
		}
	}
}

func TestBackpropagate_ForeignTracePanics(t *testing.T) {
	small, err := nn.NewNetwork([]int{1, 1})
	require.NoError(t, err)
	deep, err := nn.NewNetwork([]int{1, 2, 1})
	require.NoError(t, err)

	trace, err := small.Predict(nn.Scalar(1))
	require.NoError(t, err)

	assert.Panics(t, func() { deep.Backpropagate(nn.Scalar(1), trace) })
	assert.Panics(t, func() { deep.Backpropagate(nn.Scalar(1), nil) })
	assert.Panics(t, func() { small.Backpropagate(nn.Vector(1, 2), trace) }, "target width")
}

func TestMSE(t *testing.T) {
	assert.InDelta(t, 16.0, nn.MSE(nn.Scalar(10), nn.Scalar(6)), 1e-12)
	assert.InDelta(t, 0.0, nn.MSE(nn.Vector(1, 2), mat.NewDense(2, 1, []float64{1, 2})), 1e-12)
	// ((1-0)^2 + (2-4)^2) / 2
	assert.InDelta(t, 2.5, nn.MSE(mat.NewDense(1, 2, []float64{1, 2}), nn.Vector(0, 4)), 1e-12)
}
