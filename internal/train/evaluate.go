package train

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/parallel"
)

// Evaluate returns the mean MSE of net over a dataset without updating it.
//
// Samples are predicted concurrently; Predict never mutates the network, so
// this is safe as long as nothing trains net at the same time. opts are
// passed to every Predict call; with nn.WithGuard(true) the error of the
// lowest-indexed failing sample is returned.
func Evaluate(net *nn.Network, inputs, targets []mat.Matrix, opts ...nn.PredictOption) (float64, error) {
	if len(inputs) == 0 {
		return 0, ErrEmptyDataset
	}
	if len(inputs) != len(targets) {
		return 0, fmt.Errorf("%w: %d inputs, %d targets", ErrLengthMismatch, len(inputs), len(targets))
	}

	errs := make([]error, len(inputs))
	total := parallel.Sum(len(inputs), func(i int) float64 {
		trace, err := net.Predict(inputs[i], opts...)
		if err != nil {
			errs[i] = fmt.Errorf("sample %d: %w", i, err)
			return 0
		}
		return nn.MSE(targets[i], trace.Output)
	}, parallel.DefaultConfig())
	for _, err := range errs {
		if err != nil {
			return 0, err
		}
	}
	return total / float64(len(inputs)), nil
}
