package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// He initialization for weights.
//
// Draws every entry independently from N(0, 1) and scales it by
// sqrt(2 / fanIn), which keeps the pre-activation variance roughly constant
// from layer to layer.
//
// Parameters:
//   - fanIn: Number of input units (columns of the weight matrix)
//   - fanOut: Number of output units (rows of the weight matrix)
//   - rng: Random source
//
// Returns a fanOut x fanIn matrix.
func He(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	scale := math.Sqrt(2.0 / float64(fanIn))

	data := make([]float64, fanOut*fanIn)
	for i := range data {
		data[i] = rng.NormFloat64() * scale
	}
	return mat.NewDense(fanOut, fanIn, data)
}

// Zeros creates a rows x cols matrix filled with zeros.
//
// This is used for bias initialization.
func Zeros(rows, cols int) *mat.Dense {
	return mat.NewDense(rows, cols, nil)
}

// newRand returns a seeded source, or a randomly seeded one when seed < 0.
func newRand(seed int64) *rand.Rand {
	if seed >= 0 {
		return rand.New(rand.NewSource(seed)) //nolint:gosec // Intentional deterministic seed for reproducibility
	}
	return rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // Weight initialization is not security-critical
}
