package optim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/nn"
)

// SGD implements plain gradient descent with a fixed learning rate.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//	optimizer.Step(net.Parameters(), grads.Flatten())
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	// Set defaults
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr: config.LR,
	}
}

// Step performs a single optimization step.
//
// Panics when the parameter and gradient lists differ in length or shape.
func (s *SGD) Step(params []*nn.Parameter, grads []*mat.Dense) {
	if len(params) != len(grads) {
		panic(fmt.Sprintf("SGD.Step: %d parameters but %d gradients", len(params), len(grads)))
	}
	for i, param := range params {
		param.Sub(grads[i], s.lr)
	}
}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// Apply performs W[l] -= lr*gW[l] and b[l] -= lr*gb[l] for every layer of net.
func Apply(net *nn.Network, grads *nn.Gradients, lr float64) {
	(&SGD{lr: lr}).Step(net.Parameters(), grads.Flatten())
}
