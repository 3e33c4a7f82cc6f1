// Package train drives epochs of per-sample gradient descent over a Network
// and decides when to stop early.
//
// Each epoch visits every (input, target) pair in dataset order:
//
//	Predict → (guard) → MSE → Backpropagate → optimizer Step
//
// The loss recorded for an epoch is the loss of the last sample processed in
// it, not an epoch average. On early stopping the Network keeps its current
// parameters; there is no rollback to the best epoch.
package train

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/optim"
)

// Result summarizes a finished run.
type Result struct {
	Epochs      int       // Epochs actually run
	Stopped     bool      // True when early stopping ended the run
	FinalLoss   float64   // Loss recorded for the last epoch run
	BestLoss    float64   // Lowest epoch loss observed (+Inf when no epoch ran)
	LossHistory []float64 // Recorded loss per epoch
}

// Trainer runs the training loop.
type Trainer struct {
	config    Config
	optimizer optim.Optimizer
}

// NewTrainer creates a trainer.
//
// A nil optimizer selects SGD with config.LearningRate.
func NewTrainer(config Config, optimizer optim.Optimizer) *Trainer {
	if optimizer == nil {
		optimizer = optim.NewSGD(optim.SGDConfig{LR: config.LearningRate})
	}
	return &Trainer{
		config:    config,
		optimizer: optimizer,
	}
}

// Config returns the trainer configuration.
func (t *Trainer) Config() Config {
	return t.config
}

// Fit trains net in place on inputs/targets.
//
// Returns ErrInvalidConfig, ErrEmptyDataset or ErrLengthMismatch before any
// update, and a wrapped nn.ErrNumericalInstability if the guard is enabled and
// trips. Training state (best loss, patience) starts fresh on every call.
func (t *Trainer) Fit(net *nn.Network, inputs, targets []mat.Matrix) (*Result, error) {
	if err := t.config.validate(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyDataset
	}
	if len(inputs) != len(targets) {
		return nil, fmt.Errorf("%w: %d inputs, %d targets", ErrLengthMismatch, len(inputs), len(targets))
	}

	stopper := NewEarlyStopping(t.config.PatienceLimit, t.config.WarmUpEpochs)
	result := &Result{
		BestLoss:    math.Inf(1),
		LossHistory: make([]float64, 0, t.config.Epochs),
	}
	params := net.Parameters()

	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		var loss float64
		for i := range inputs {
			trace, err := net.Predict(inputs[i], nn.WithGuard(t.config.CheckNumerics))
			if err != nil {
				return result, fmt.Errorf("epoch %d, sample %d: %w", epoch, i, err)
			}
			loss = nn.MSE(targets[i], trace.Output)
			grads := net.Backpropagate(targets[i], trace)
			t.optimizer.Step(params, grads.Flatten())
		}

		result.Epochs = epoch + 1
		result.FinalLoss = loss
		result.LossHistory = append(result.LossHistory, loss)
		if loss < result.BestLoss {
			result.BestLoss = loss
		}

		state := stopper.Observe(epoch, loss)
		t.logf(epoch, loss)
		if t.config.OnEpoch != nil {
			t.config.OnEpoch(EpochStats{
				Epoch:    epoch,
				Loss:     loss,
				State:    state,
				BestLoss: stopper.BestLoss(),
				Patience: stopper.Patience(),
			})
		}

		if state == Stopped {
			result.Stopped = true
			if t.config.Logger != nil {
				t.config.Logger.Printf("Early stopping at epoch %d, best loss: %g", epoch, stopper.BestLoss())
			}
			break
		}
	}
	return result, nil
}

func (t *Trainer) logf(epoch int, loss float64) {
	if t.config.Logger == nil || t.config.LogEvery <= 0 || epoch%t.config.LogEvery != 0 {
		return
	}
	t.config.Logger.Printf("Epoch %d, Loss: %g", epoch, loss)
}

// Train is shorthand for NewTrainer with SGD and the given hyperparameters.
//
// Progress is printed to the standard logger every 10 epochs.
func Train(net *nn.Network, inputs, targets []mat.Matrix, epochs int, learningRate float64, patienceLimit, warmUpEpochs int) (*Result, error) {
	config := DefaultConfig()
	config.Epochs = epochs
	config.LearningRate = learningRate
	config.PatienceLimit = patienceLimit
	config.WarmUpEpochs = warmUpEpochs
	config.Logger = log.Default()
	return NewTrainer(config, nil).Fit(net, inputs, targets)
}
