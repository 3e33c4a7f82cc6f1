package train

import (
	"fmt"
	"math"
)

// State is the phase of the early-stopping policy.
type State int

const (
	// Warmup: epoch < WarmUpEpochs, losses are not monitored.
	Warmup State = iota
	// Monitoring: losses are compared against the best seen so far.
	Monitoring
	// Stopped: patience ran out; terminal.
	Stopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Warmup:
		return "warmup"
	case Monitoring:
		return "monitoring"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EarlyStopping tracks the best monitored loss and the number of consecutive
// non-improving epochs.
//
// A fresh EarlyStopping starts in Warmup with BestLoss = +Inf and a zero
// patience counter. A PatienceLimit <= 0 disables stopping; the state still
// moves from Warmup to Monitoring.
type EarlyStopping struct {
	patienceLimit int
	warmUpEpochs  int

	bestLoss float64
	patience int
	state    State
}

// NewEarlyStopping creates a policy in its initial state.
func NewEarlyStopping(patienceLimit, warmUpEpochs int) *EarlyStopping {
	e := &EarlyStopping{
		patienceLimit: patienceLimit,
		warmUpEpochs:  warmUpEpochs,
	}
	e.Reset()
	return e
}

// Reset returns the policy to Warmup with BestLoss = +Inf.
func (e *EarlyStopping) Reset() {
	e.bestLoss = math.Inf(1)
	e.patience = 0
	e.state = Warmup
}

// Observe records the loss of a finished epoch (0-based) and returns the
// resulting state.
//
// Once Stopped, further observations are ignored.
func (e *EarlyStopping) Observe(epoch int, loss float64) State {
	if e.state == Stopped {
		return e.state
	}
	if epoch >= e.warmUpEpochs {
		e.state = Monitoring
	}
	if e.state != Monitoring {
		return e.state
	}

	if loss < e.bestLoss {
		e.bestLoss = loss
		e.patience = 0
	} else {
		e.patience++
	}

	if e.patienceLimit > 0 && e.patience >= e.patienceLimit {
		e.state = Stopped
	}
	return e.state
}

// State returns the current state.
func (e *EarlyStopping) State() State {
	return e.state
}

// BestLoss returns the lowest monitored loss (+Inf before monitoring starts).
func (e *EarlyStopping) BestLoss() float64 {
	return e.bestLoss
}

// Patience returns the number of consecutive non-improving monitored epochs.
func (e *EarlyStopping) Patience() int {
	return e.patience
}
