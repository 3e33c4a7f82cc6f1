// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/nn"
)

// Matrix is any gonum matrix usable as an input or target.
type Matrix = mat.Matrix

// Network is a fully connected feed-forward network.
type Network = nn.Network

// Option configures a Network at construction.
type Option = nn.Option

// Parameter is a named trainable matrix owned by a Network.
type Parameter = nn.Parameter

// Trace holds the activations and pre-activations of one forward pass.
type Trace = nn.Trace

// Gradients holds per-layer weight and bias gradients.
type Gradients = nn.Gradients

// PredictOption configures a single Predict call.
type PredictOption = nn.PredictOption

// InstabilityError reports the first NaN/Inf found by the guard.
type InstabilityError = nn.InstabilityError

// Activation selects the nonlinearity used by every layer.
type Activation = nn.Activation

// Activations
const (
	Identity = nn.Identity
	ReLU     = nn.ReLU
)

// Errors
var (
	ErrInvalidTopology      = nn.ErrInvalidTopology
	ErrNumericalInstability = nn.ErrNumericalInstability
	ErrUnknownActivation    = nn.ErrUnknownActivation
	ErrShapeMismatch        = nn.ErrShapeMismatch
)

// NewNetwork creates a network with He-initialized weights and zero biases.
//
// Example:
//
//	net, err := nn.NewNetwork([]int{2, 8, 1}, nn.WithActivation(nn.ReLU))
func NewNetwork(layers []int, opts ...Option) (*Network, error) {
	return nn.NewNetwork(layers, opts...)
}

// WithActivation sets the initial activation.
func WithActivation(a Activation) Option {
	return nn.WithActivation(a)
}

// WithSeed makes weight initialization deterministic (negative = random).
func WithSeed(seed int64) Option {
	return nn.WithSeed(seed)
}

// WithGuard enables the NaN/Inf guard for one Predict call.
func WithGuard(enabled bool) PredictOption {
	return nn.WithGuard(enabled)
}

// ParseActivation maps "identity"/"linear"/"relu" to an Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Scalar wraps v as a 1x1 matrix.
func Scalar(v float64) *mat.Dense {
	return nn.Scalar(v)
}

// Vector wraps values as a 1-D vector.
func Vector(values ...float64) *mat.VecDense {
	return nn.Vector(values...)
}

// MSE computes the mean squared error between target and prediction.
func MSE(yTrue, yPred mat.Matrix) float64 {
	return nn.MSE(yTrue, yPred)
}

// Validate checks parameters and trace values for NaN/Inf.
func Validate(weights, biases []*mat.Dense, x *mat.Dense, activations, zs []*mat.Dense) error {
	return nn.Validate(weights, biases, x, activations, zs)
}
