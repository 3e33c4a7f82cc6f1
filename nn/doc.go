// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the feed-forward network, its forward and backward
// passes, and the numerical guard.
//
// # Overview
//
// This package contains:
//   - Network: layer widths, He-initialized weights, zero biases
//   - Activations: Identity, ReLU (each with its derivative)
//   - Predict: forward pass returning a Trace of activations and pre-activations
//   - Backpropagate: hand-derived MSE gradients
//   - Validate: NaN/Inf guard
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/perceptron/nn"
//	    "github.com/born-ml/perceptron/optim"
//	)
//
//	func main() {
//	    net, err := nn.NewNetwork([]int{1, 4, 3, 2, 1}, nn.WithSeed(1))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    trace, err := net.Predict(nn.Scalar(0.25))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    grads := net.Backpropagate(nn.Scalar(25), trace)
//	    optim.Apply(net, grads, 0.01)
//	}
//
// # Inputs
//
// Predict accepts any gonum mat.Matrix that is a scalar (1x1), a column
// (including *mat.VecDense) or a single row, and normalizes it to a column.
//
// # Numerical guard
//
// Pass nn.WithGuard(true) to Predict to check every parameter and every
// intermediate value for NaN/Inf after each layer. Failures match
// nn.ErrNumericalInstability with errors.Is.
package nn
