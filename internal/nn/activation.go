package nn

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Activation selects the element-wise nonlinearity applied after every layer.
//
// The set is closed: each value carries both the function and its derivative,
// so swapping the activation on a Network swaps the pair atomically.
//
// Example:
//
//	net, _ := nn.NewNetwork([]int{2, 8, 1}, nn.WithActivation(nn.ReLU))
//	_ = net.SetActivation(nn.Identity)
type Activation int

const (
	// Identity applies f(x) = x, f'(x) = 1.
	Identity Activation = iota

	// ReLU applies f(x) = max(0, x).
	//
	// The derivative is 1 for x > 0 and 0 otherwise; the non-differentiable
	// point x = 0 resolves to 0.
	ReLU
)

// Activations lists every supported activation in declaration order.
func Activations() []Activation {
	return []Activation{Identity, ReLU}
}

// ParseActivation maps a name ("identity", "linear", "relu") to an Activation.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "identity", "linear":
		return Identity, nil
	case "relu":
		return ReLU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
}

// Valid reports whether a is one of the supported activations.
func (a Activation) Valid() bool {
	return a == Identity || a == ReLU
}

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case Identity:
		return "identity"
	case ReLU:
		return "relu"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// Apply evaluates the activation at x.
func (a Activation) Apply(x float64) float64 {
	switch a {
	case Identity:
		return x
	case ReLU:
		if x > 0 {
			return x
		}
		return 0
	default:
		panic(fmt.Sprintf("Activation.Apply: unsupported activation %d", int(a)))
	}
}

// Derivative evaluates the activation derivative at the pre-activation x.
func (a Activation) Derivative(x float64) float64 {
	switch a {
	case Identity:
		return 1
	case ReLU:
		if x > 0 {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("Activation.Derivative: unsupported activation %d", int(a)))
	}
}

// forward returns a new matrix holding f(z) element-wise.
func (a Activation) forward(z mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return a.Apply(v) }, z)
	return &out
}

// derivative returns a new matrix holding f'(z) element-wise.
func (a Activation) derivative(z mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return a.Derivative(v) }, z)
	return &out
}
