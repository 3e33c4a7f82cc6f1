// Package nn implements the network, forward pass, backward pass and
// numerical guard of the perceptron trainer.
//
// This package provides:
//   - Network: layer widths, weight matrices, bias columns, one Activation
//   - Activation: Identity and ReLU, each with its derivative
//   - Predict: forward pass producing a Trace (activations and pre-activations)
//   - Backpropagate: hand-derived MSE gradients from a Trace
//   - Validate: NaN/Inf guard over parameters and a Trace
//   - MSE: the training loss
//
// All matrices are gonum *mat.Dense values; vectors are columns.
package nn
