package train

import (
	"errors"
	"fmt"
	"log"
)

// Common errors.
var (
	ErrEmptyDataset   = errors.New("dataset is empty")
	ErrLengthMismatch = errors.New("inputs and targets differ in length")
	ErrInvalidConfig  = errors.New("invalid training config")
)

// Config holds the hyperparameters and hooks of a training run.
type Config struct {
	Epochs        int     // Epoch budget
	LearningRate  float64 // Step size for the default SGD optimizer; must be positive
	PatienceLimit int     // Non-improving epochs tolerated before stopping (<= 0 disables)
	WarmUpEpochs  int     // Epochs before the loss is monitored
	LogEvery      int     // Log the epoch loss every N epochs (<= 0 disables)
	CheckNumerics bool    // Run the NaN/Inf guard after every layer

	// Logger receives progress lines. Nil keeps training silent.
	Logger *log.Logger

	// OnEpoch, when set, is called after every epoch's early-stopping update.
	OnEpoch func(EpochStats)
}

// DefaultConfig returns the settings used by the CLI when nothing is given.
func DefaultConfig() Config {
	return Config{
		Epochs:        1000,
		LearningRate:  0.01,
		PatienceLimit: 10,
		WarmUpEpochs:  0,
		LogEvery:      10,
	}
}

// EpochStats describes one finished epoch.
type EpochStats struct {
	Epoch    int     // 0-based epoch index
	Loss     float64 // Loss of the last sample processed in the epoch
	State    State   // Early-stopping state after this epoch
	BestLoss float64 // Best monitored loss so far
	Patience int     // Consecutive non-improving monitored epochs
}

func (c Config) validate() error {
	switch {
	case c.Epochs < 0:
		return fmt.Errorf("%w: epochs must not be negative, got %d", ErrInvalidConfig, c.Epochs)
	case c.LearningRate <= 0:
		return fmt.Errorf("%w: learning rate must be positive, got %g", ErrInvalidConfig, c.LearningRate)
	case c.WarmUpEpochs < 0:
		return fmt.Errorf("%w: warm-up epochs must not be negative, got %d", ErrInvalidConfig, c.WarmUpEpochs)
	}
	return nil
}
