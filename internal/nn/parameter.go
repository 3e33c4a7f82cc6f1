package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters wrap the weight matrices and bias columns owned by a Network.
// The optimizer mutates Value in place; nothing else should.
//
// Example:
//
//	for _, p := range net.Parameters() {
//	    r, c := p.Value().Dims()
//	    fmt.Printf("%s: %dx%d\n", p.Name(), r, c)
//	}
type Parameter struct {
	name  string     // Parameter name (e.g., "layer0.weight")
	value *mat.Dense // The parameter matrix
}

// NewParameter creates a new trainable parameter.
//
// The matrix should be initialized before creating the Parameter.
func NewParameter(name string, value *mat.Dense) *Parameter {
	return &Parameter{
		name:  name,
		value: value,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the live parameter matrix.
func (p *Parameter) Value() *mat.Dense {
	return p.value
}

// Dims returns the parameter shape.
func (p *Parameter) Dims() (r, c int) {
	return p.value.Dims()
}

// Sub applies p -= scale * delta in place.
//
// Panics when delta does not have the parameter's shape.
func (p *Parameter) Sub(delta mat.Matrix, scale float64) {
	pr, pc := p.value.Dims()
	dr, dc := delta.Dims()
	if pr != dr || pc != dc {
		panic(fmt.Sprintf("Parameter.Sub: %s has shape (%d, %d), update has shape (%d, %d)",
			p.name, pr, pc, dr, dc))
	}

	var step mat.Dense
	step.Scale(scale, delta)
	p.value.Sub(p.value, &step)
}
