// Package optim implements the parameter update step of the trainer.
//
// This package provides:
//   - Optimizer interface: Base interface for update rules
//   - SGD: plain fixed-rate gradient descent
//
// Example usage:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//
//	trace, _ := net.Predict(x)
//	grads := net.Backpropagate(y, trace)
//	optimizer.Step(net.Parameters(), grads.Flatten())
package optim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/nn"
)

// Optimizer is the base interface for all update rules.
type Optimizer interface {
	// Step applies one update to every parameter in place.
	//
	// grads[i] must have the shape of params[i]; Network.Parameters and
	// Gradients.Flatten produce matching orders.
	Step(params []*nn.Parameter, grads []*mat.Dense)

	// LR returns the current learning rate.
	LR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}
