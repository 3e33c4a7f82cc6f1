// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs per-sample gradient descent over a dataset with
// warm-up and patience based early stopping.
//
// Example:
//
//	cfg := train.DefaultConfig()
//	cfg.Epochs = 500
//	cfg.Logger = log.Default()
//	result, err := train.NewTrainer(cfg, nil).Fit(net, inputs, targets)
package train

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/optim"
	"github.com/born-ml/perceptron/internal/train"
)

// Config holds the hyperparameters and hooks of a training run.
type Config = train.Config

// EpochStats describes one finished epoch.
type EpochStats = train.EpochStats

// Result summarizes a finished run.
type Result = train.Result

// Trainer runs the training loop.
type Trainer = train.Trainer

// EarlyStopping is the warm-up/patience stopping policy.
type EarlyStopping = train.EarlyStopping

// State is the phase of the early-stopping policy.
type State = train.State

// States
const (
	Warmup     = train.Warmup
	Monitoring = train.Monitoring
	Stopped    = train.Stopped
)

// Errors
var (
	ErrEmptyDataset   = train.ErrEmptyDataset
	ErrLengthMismatch = train.ErrLengthMismatch
	ErrInvalidConfig  = train.ErrInvalidConfig
)

// DefaultConfig returns the default training configuration.
func DefaultConfig() Config {
	return train.DefaultConfig()
}

// NewTrainer creates a trainer; a nil optimizer selects SGD.
func NewTrainer(config Config, optimizer optim.Optimizer) *Trainer {
	return train.NewTrainer(config, optimizer)
}

// NewEarlyStopping creates a stopping policy in its initial state.
func NewEarlyStopping(patienceLimit, warmUpEpochs int) *EarlyStopping {
	return train.NewEarlyStopping(patienceLimit, warmUpEpochs)
}

// Evaluate returns the mean MSE of net over a dataset without updating it.
func Evaluate(net *nn.Network, inputs, targets []mat.Matrix, opts ...nn.PredictOption) (float64, error) {
	return train.Evaluate(net, inputs, targets, opts...)
}

// Train trains net with SGD and logs progress every 10 epochs.
func Train(net *nn.Network, inputs, targets []mat.Matrix, epochs int, learningRate float64, patienceLimit, warmUpEpochs int) (*Result, error) {
	return train.Train(net, inputs, targets, epochs, learningRate, patienceLimit, warmUpEpochs)
}
