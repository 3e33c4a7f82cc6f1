package train_test

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/train"
)

// ascent moves parameters up the gradient so every epoch is worse than the last.
type ascent struct {
	lr float64
}

func (a ascent) Step(params []*nn.Parameter, grads []*mat.Dense) {
	for i, p := range params {
		p.Sub(grads[i], -a.lr)
	}
}

func (a ascent) LR() float64 { return a.lr }

// identityData returns y = x for a handful of points in [0, 1].
func identityData() (inputs, targets []mat.Matrix) {
	for _, x := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		inputs = append(inputs, nn.Scalar(x))
		targets = append(targets, nn.Scalar(x))
	}
	return inputs, targets
}

func quietConfig(epochs int, lr float64, patience int) train.Config {
	cfg := train.DefaultConfig()
	cfg.Epochs = epochs
	cfg.LearningRate = lr
	cfg.PatienceLimit = patience
	cfg.Logger = nil
	return cfg
}

func TestFit_Converges(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1}, nn.WithSeed(42))
	require.NoError(t, err)
	inputs, targets := identityData()

	result, err := train.NewTrainer(quietConfig(500, 0.1, 0), nil).Fit(net, inputs, targets)
	require.NoError(t, err)

	assert.Equal(t, 500, result.Epochs)
	assert.False(t, result.Stopped)
	require.Len(t, result.LossHistory, 500)
	assert.Less(t, result.FinalLoss, result.LossHistory[0])
	assert.Less(t, result.FinalLoss, 1e-4)
	assert.InDelta(t, 1.0, net.Weights()[0].At(0, 0), 1e-2)
	assert.InDelta(t, 0.0, net.Biases()[0].At(0, 0), 1e-2)

	best := math.Inf(1)
	for _, l := range result.LossHistory {
		best = math.Min(best, l)
	}
	assert.InDelta(t, best, result.BestLoss, 1e-15)
}

func TestFit_LossDecreasesMonotonically(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		net, err := nn.NewNetwork([]int{1, 1}, nn.WithSeed(seed))
		require.NoError(t, err)

		result, err := train.NewTrainer(quietConfig(300, 0.01, 0), nil).
			Fit(net, []mat.Matrix{nn.Scalar(0.5)}, []mat.Matrix{nn.Scalar(0.5)})
		require.NoError(t, err)
		require.Len(t, result.LossHistory, 300)

		for i := 1; i < len(result.LossHistory); i++ {
			assert.LessOrEqual(t, result.LossHistory[i], result.LossHistory[i-1], "seed %d, epoch %d", seed, i)
		}
		assert.Less(t, result.FinalLoss, 1e-3*result.LossHistory[0]+1e-12, "seed %d", seed)
	}
}

func TestFit_StopsEarly(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1})
	require.NoError(t, err)
	require.NoError(t, net.SetParameters(
		[]*mat.Dense{mat.NewDense(1, 1, []float64{2})},
		[]*mat.Dense{mat.NewDense(1, 1, []float64{0})},
	))

	var stats []train.EpochStats
	cfg := quietConfig(100, 0.01, 1)
	cfg.OnEpoch = func(s train.EpochStats) { stats = append(stats, s) }

	result, err := train.NewTrainer(cfg, ascent{lr: 0.01}).
		Fit(net, []mat.Matrix{nn.Scalar(3)}, []mat.Matrix{nn.Scalar(10)})
	require.NoError(t, err)

	assert.True(t, result.Stopped)
	assert.Equal(t, 2, result.Epochs)
	assert.InDelta(t, 16.0, result.LossHistory[0], 1e-9)
	assert.Greater(t, result.LossHistory[1], result.LossHistory[0])
	assert.InDelta(t, 16.0, result.BestLoss, 1e-9)

	require.Len(t, stats, 2)
	assert.Equal(t, train.Monitoring, stats[0].State)
	assert.Equal(t, train.Stopped, stats[1].State)
	assert.Equal(t, 1, stats[1].Patience)
	assert.InDelta(t, 16.0, stats[1].BestLoss, 1e-9)
}

func TestFit_WarmUpDelaysStopping(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1}, nn.WithSeed(1))
	require.NoError(t, err)

	cfg := quietConfig(100, 0.01, 1)
	cfg.WarmUpEpochs = 5

	result, err := train.NewTrainer(cfg, ascent{lr: 0.01}).
		Fit(net, []mat.Matrix{nn.Scalar(1)}, []mat.Matrix{nn.Scalar(5)})
	require.NoError(t, err)

	// Epoch 5 is the first monitored one, epoch 6 exhausts patience.
	assert.True(t, result.Stopped)
	assert.Equal(t, 7, result.Epochs)
}

func TestFit_ZeroEpochs(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1}, nn.WithSeed(1))
	require.NoError(t, err)
	before := net.Weights()
	inputs, targets := identityData()

	result, err := train.NewTrainer(quietConfig(0, 0.1, 1), nil).Fit(net, inputs, targets)
	require.NoError(t, err)

	assert.Zero(t, result.Epochs)
	assert.Empty(t, result.LossHistory)
	assert.True(t, math.IsInf(result.BestLoss, 1))
	assert.True(t, mat.Equal(before[0], net.Weights()[0]))
}

func TestFit_InvalidInput(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1})
	require.NoError(t, err)
	inputs, targets := identityData()

	tests := []struct {
		name    string
		cfg     train.Config
		inputs  []mat.Matrix
		targets []mat.Matrix
		want    error
	}{
		{"empty", quietConfig(10, 0.1, 1), nil, nil, train.ErrEmptyDataset},
		{"length mismatch", quietConfig(10, 0.1, 1), inputs, targets[:2], train.ErrLengthMismatch},
		{"negative epochs", quietConfig(-1, 0.1, 1), inputs, targets, train.ErrInvalidConfig},
		{"negative lr", quietConfig(10, -0.1, 1), inputs, targets, train.ErrInvalidConfig},
		{"zero lr", quietConfig(10, 0, 1), inputs, targets, train.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := net.Weights()
			result, err := train.NewTrainer(tt.cfg, nil).Fit(net, tt.inputs, tt.targets)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, result)
			assert.True(t, mat.Equal(before[0], net.Weights()[0]), "no update before validation")
		})
	}
}

func TestFit_CheckNumerics(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1})
	require.NoError(t, err)
	require.NoError(t, net.SetParameters(
		[]*mat.Dense{mat.NewDense(1, 1, []float64{math.NaN()})},
		[]*mat.Dense{mat.NewDense(1, 1, nil)},
	))

	cfg := quietConfig(10, 0.1, 1)
	cfg.CheckNumerics = true
	_, err = train.NewTrainer(cfg, nil).Fit(net, []mat.Matrix{nn.Scalar(1)}, []mat.Matrix{nn.Scalar(1)})
	require.ErrorIs(t, err, nn.ErrNumericalInstability)
	assert.Contains(t, err.Error(), "epoch 0, sample 0")
}

func TestFit_LogCadence(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1}, nn.WithSeed(3))
	require.NoError(t, err)
	inputs, targets := identityData()

	var buf bytes.Buffer
	cfg := quietConfig(5, 0.1, 0)
	cfg.LogEvery = 2
	cfg.Logger = log.New(&buf, "", 0)

	_, err = train.NewTrainer(cfg, nil).Fit(net, inputs, targets)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Epoch 0, Loss: "))
	assert.True(t, strings.HasPrefix(lines[1], "Epoch 2, Loss: "))
	assert.True(t, strings.HasPrefix(lines[2], "Epoch 4, Loss: "))
}

func TestFit_LogsEarlyStop(t *testing.T) {
	net, err := nn.NewNetwork([]int{1, 1}, nn.WithSeed(3))
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg := quietConfig(100, 0.01, 1)
	cfg.Logger = log.New(&buf, "", 0)

	_, err = train.NewTrainer(cfg, ascent{lr: 0.01}).
		Fit(net, []mat.Matrix{nn.Scalar(1)}, []mat.Matrix{nn.Scalar(5)})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Early stopping at epoch 1, best loss: ")
}

func TestNewTrainer_DefaultOptimizer(t *testing.T) {
	cfg := quietConfig(1, 0.25, 1)
	trainer := train.NewTrainer(cfg, nil)
	assert.Equal(t, cfg.Epochs, trainer.Config().Epochs)
	assert.InDelta(t, 0.25, trainer.Config().LearningRate, 1e-15)
}
