package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Gradients holds dLoss/dW and dLoss/db for one sample, shape-matched to the
// Network's weights and biases.
type Gradients struct {
	Weights []*mat.Dense
	Biases  []*mat.Dense
}

// Flatten returns the gradients ordered [gW0, gb0, gW1, gb1, ...], matching
// Network.Parameters.
func (g *Gradients) Flatten() []*mat.Dense {
	out := make([]*mat.Dense, 0, len(g.Weights)+len(g.Biases))
	for l := range g.Weights {
		out = append(out, g.Weights[l], g.Biases[l])
	}
	return out
}

// Backpropagate computes the MSE gradients for one sample from its forward
// trace, using trace.Output as the prediction.
//
// Output layer:
//
//	delta   = 2 * (y_pred - y_true) ⊙ f'(zs[L-1])
//	gb[L-1] = delta
//	gW[L-1] = delta · activations[L-1]ᵀ
//
// Hidden layers l = L-2 .. 0:
//
//	delta = W[l+1]ᵀ · delta
//	gb[l] = delta
//	gW[l] = delta · activations[l]ᵀ
//
// The hidden-layer delta does not reapply f'(zs[l]). This is exact for
// Identity and a known simplification for ReLU; training dynamics depend on it.
//
// yTrue is normalized like a Predict input and must have OutputWidth() entries.
// A trace that does not belong to this topology panics.
func (n *Network) Backpropagate(yTrue mat.Matrix, trace *Trace) *Gradients {
	L := len(n.weights)
	if trace == nil || len(trace.Activations) != L+1 || len(trace.Zs) != L {
		panic(fmt.Sprintf("Network.Backpropagate: trace does not match %d layers", L))
	}

	y := asColumn("Network.Backpropagate", yTrue, n.OutputWidth())
	yPred := trace.Output
	if yPred == nil {
		yPred = trace.Activations[L]
	}

	grads := &Gradients{
		Weights: make([]*mat.Dense, L),
		Biases:  make([]*mat.Dense, L),
	}

	// delta = 2 * (y_pred - y_true) ⊙ f'(z_last)
	delta := &mat.Dense{}
	delta.Sub(yPred, y)
	delta.Scale(2, delta)
	delta.MulElem(delta, n.activation.derivative(trace.Zs[L-1]))

	grads.Biases[L-1] = delta
	grads.Weights[L-1] = outer(delta, trace.Activations[L-1])

	for l := L - 2; l >= 0; l-- {
		next := &mat.Dense{}
		next.Mul(n.weights[l+1].value.T(), delta)
		delta = next

		grads.Biases[l] = delta
		grads.Weights[l] = outer(delta, trace.Activations[l])
	}
	return grads
}

// outer returns delta · aᵀ.
func outer(delta, a *mat.Dense) *mat.Dense {
	var g mat.Dense
	g.Mul(delta, a.T())
	return &g
}
