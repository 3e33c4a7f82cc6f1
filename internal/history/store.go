// Package history records training runs and their per-epoch losses.
//
// Only run metadata and loss curves are stored; trained parameters are not.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotInitialized is returned by store operations before Init.
var ErrNotInitialized = errors.New("store is not initialized")

// Run describes one call to the trainer.
type Run struct {
	ID            string
	Layers        []int
	Activation    string
	LearningRate  float64
	Epochs        int // Epoch budget
	PatienceLimit int
	WarmUpEpochs  int
	EpochsRun     int
	Stopped       bool
	FinalLoss     float64
	BestLoss      float64
	StartedAt     time.Time
}

// Epoch is one recorded epoch of a run.
type Epoch struct {
	Epoch int
	Loss  float64
	State string
}

// Store defines persistence operations for run history.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context) ([]Run, error)
	SaveEpochs(ctx context.Context, runID string, epochs []Epoch) error
	GetEpochs(ctx context.Context, runID string) ([]Epoch, bool, error)
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}
