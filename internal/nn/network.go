package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Network is a fully connected feed-forward network.
//
// For layer widths [n0, n1, ..., nL] it holds L weight matrices W[l] of shape
// (n[l+1], n[l]) and L bias columns b[l] of shape (n[l+1], 1). A single
// Activation is applied after every layer, including the last.
//
// A Network is not safe for concurrent mutation: one trainer owns it at a time.
//
// Example:
//
//	net, err := nn.NewNetwork([]int{1, 4, 3, 2, 1}, nn.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	trace, err := net.Predict(nn.Scalar(0.5))
type Network struct {
	layers     []int
	weights    []*Parameter
	biases     []*Parameter
	activation Activation
}

// Option configures a Network at construction.
type Option func(*networkOptions)

type networkOptions struct {
	activation Activation
	seed       int64
}

// WithActivation sets the initial activation (default Identity).
func WithActivation(a Activation) Option {
	return func(o *networkOptions) {
		o.activation = a
	}
}

// WithSeed makes weight initialization deterministic.
//
// A negative seed (the default) draws a random one.
func WithSeed(seed int64) Option {
	return func(o *networkOptions) {
		o.seed = seed
	}
}

// NewNetwork creates a network with He-initialized weights and zero biases.
//
// Returns ErrInvalidTopology if layers has fewer than two entries or any
// entry is not positive, and ErrUnknownActivation for an unsupported
// WithActivation value.
func NewNetwork(layers []int, opts ...Option) (*Network, error) {
	if len(layers) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layer widths, got %d", ErrInvalidTopology, len(layers))
	}
	for i, width := range layers {
		if width <= 0 {
			return nil, fmt.Errorf("%w: layer %d has width %d", ErrInvalidTopology, i, width)
		}
	}

	options := &networkOptions{
		activation: Identity,
		seed:       -1,
	}
	for _, opt := range opts {
		opt(options)
	}
	if !options.activation.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownActivation, options.activation)
	}

	rng := newRand(options.seed)
	n := &Network{
		layers:     append([]int(nil), layers...),
		weights:    make([]*Parameter, len(layers)-1),
		biases:     make([]*Parameter, len(layers)-1),
		activation: options.activation,
	}
	for l := 0; l < len(layers)-1; l++ {
		n.weights[l] = NewParameter(fmt.Sprintf("layer%d.weight", l), He(layers[l], layers[l+1], rng))
		n.biases[l] = NewParameter(fmt.Sprintf("layer%d.bias", l), Zeros(layers[l+1], 1))
	}
	return n, nil
}

// Layers returns a copy of the layer widths.
func (n *Network) Layers() []int {
	return append([]int(nil), n.layers...)
}

// NumLayers returns the number of weight layers (len(Layers()) - 1).
func (n *Network) NumLayers() int {
	return len(n.weights)
}

// InputWidth returns layers[0].
func (n *Network) InputWidth() int {
	return n.layers[0]
}

// OutputWidth returns layers[L].
func (n *Network) OutputWidth() int {
	return n.layers[len(n.layers)-1]
}

// Activation returns the active activation.
func (n *Network) Activation() Activation {
	return n.activation
}

// SetActivation replaces the activation used by every layer.
func (n *Network) SetActivation(a Activation) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownActivation, a)
	}
	n.activation = a
	return nil
}

// Parameters returns the live trainable parameters ordered
// [W0, b0, W1, b1, ...], matching Gradients.Flatten.
func (n *Network) Parameters() []*Parameter {
	params := make([]*Parameter, 0, 2*len(n.weights))
	for l := range n.weights {
		params = append(params, n.weights[l], n.biases[l])
	}
	return params
}

// Weights returns copies of the weight matrices.
func (n *Network) Weights() []*mat.Dense {
	return copyParams(n.weights)
}

// Biases returns copies of the bias columns.
func (n *Network) Biases() []*mat.Dense {
	return copyParams(n.biases)
}

// SetParameters overwrites every weight matrix and bias column.
//
// Values are copied in; the Network never aliases caller memory. Returns
// ErrShapeMismatch if any shape differs from the topology.
func (n *Network) SetParameters(weights, biases []*mat.Dense) error {
	if len(weights) != len(n.weights) || len(biases) != len(n.biases) {
		return fmt.Errorf("%w: %w: want %d, got %d weights and %d biases",
			ErrShapeMismatch, errParameterCountInvalid, len(n.weights), len(weights), len(biases))
	}
	for l := range n.weights {
		if err := checkDims(n.weights[l], weights[l]); err != nil {
			return err
		}
		if err := checkDims(n.biases[l], biases[l]); err != nil {
			return err
		}
	}
	for l := range n.weights {
		n.weights[l].value.Copy(weights[l])
		n.biases[l].value.Copy(biases[l])
	}
	return nil
}

func checkDims(p *Parameter, m *mat.Dense) error {
	if m == nil {
		return fmt.Errorf("%w: %s is nil", ErrShapeMismatch, p.name)
	}
	pr, pc := p.Dims()
	r, c := m.Dims()
	if pr != r || pc != c {
		return fmt.Errorf("%w: %s expects (%d, %d), got (%d, %d)", ErrShapeMismatch, p.name, pr, pc, r, c)
	}
	return nil
}

func copyParams(params []*Parameter) []*mat.Dense {
	out := make([]*mat.Dense, len(params))
	for i, p := range params {
		out[i] = mat.DenseCopyOf(p.value)
	}
	return out
}

// rawWeights returns the live weight matrices without copying.
func (n *Network) rawWeights() []*mat.Dense {
	out := make([]*mat.Dense, len(n.weights))
	for i, p := range n.weights {
		out[i] = p.value
	}
	return out
}

// rawBiases returns the live bias columns without copying.
func (n *Network) rawBiases() []*mat.Dense {
	out := make([]*mat.Dense, len(n.biases))
	for i, p := range n.biases {
		out[i] = p.value
	}
	return out
}
