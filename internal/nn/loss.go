package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MSE computes Mean Squared Error.
//
// Loss = mean((yPred - yTrue)²)
//
// Both arguments are normalized to columns first, so a scalar target can be
// compared with a 1x1 prediction directly. Mismatched widths panic.
//
// Example:
//
//	trace, _ := net.Predict(nn.Scalar(3))
//	loss := nn.MSE(nn.Scalar(10), trace.Output)
func MSE(yTrue, yPred mat.Matrix) float64 {
	pr, pc := yPred.Dims()
	width := pr * pc
	if pr != 1 && pc != 1 {
		panic(fmt.Sprintf("MSE: prediction must be a scalar, row or column, got shape (%d, %d)", pr, pc))
	}
	y := asColumn("MSE", yTrue, width)
	p := asColumn("MSE", yPred, width)

	var diff mat.Dense
	diff.Sub(p, y)
	sum := 0.0
	for i := 0; i < width; i++ {
		v := diff.At(i, 0)
		sum += v * v
	}
	return sum / float64(width)
}
