// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/perceptron/nn"
	"github.com/born-ml/perceptron/optim"
	"github.com/born-ml/perceptron/train"
)

// TestPublicAPI drives one training step and a short run through the facades.
func TestPublicAPI(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 3, 1}, nn.WithSeed(1), nn.WithActivation(nn.Identity))
	require.NoError(t, err)

	trace, err := net.Predict(nn.Scalar(0.5), nn.WithGuard(true))
	require.NoError(t, err)
	before := nn.MSE(nn.Scalar(0.5), trace.Output)

	optim.Apply(net, net.Backpropagate(nn.Scalar(0.5), trace), 0.01)

	trace, err = net.Predict(nn.Vector(0.5))
	require.NoError(t, err)
	assert.LessOrEqual(t, nn.MSE(nn.Scalar(0.5), trace.Output), before)

	cfg := train.DefaultConfig()
	cfg.Epochs = 3
	result, err := train.NewTrainer(cfg, optim.NewSGD(optim.SGDConfig{LR: 0.01})).
		Fit(net, []nn.Matrix{nn.Scalar(0.5)}, []nn.Matrix{nn.Scalar(0.5)})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Epochs)
}

func TestPublicErrors(t *testing.T) {
	_, err := nn.NewNetwork([]int{1})
	require.ErrorIs(t, err, nn.ErrInvalidTopology)

	_, err = nn.ParseActivation("softmax")
	require.ErrorIs(t, err, nn.ErrUnknownActivation)
}
