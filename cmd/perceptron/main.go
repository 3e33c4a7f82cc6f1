// Package main provides the perceptron CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/born-ml/perceptron/internal/dataset"
	"github.com/born-ml/perceptron/internal/history"
	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/train"
)

const version = "v0.1.0"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("perceptron: %v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		printUsage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "perceptron %s\n", version)
		return nil
	case "train":
		return runTrain(ctx, args[1:], out)
	case "history":
		return runHistory(ctx, args[1:], out)
	default:
		printUsage(out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "perceptron - feed-forward network trainer")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  train      Train on synthetic y = 100x data")
	fmt.Fprintln(out, "  history    List recorded runs or one run's epoch losses")
}

func runTrain(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := parseTrainFlags(args)
	if err != nil {
		return err
	}

	activation, err := nn.ParseActivation(cfg.Activation)
	if err != nil {
		return err
	}
	net, err := nn.NewNetwork(cfg.Layers, nn.WithActivation(activation), nn.WithSeed(cfg.Seed))
	if err != nil {
		return err
	}
	if net.InputWidth() != 1 || net.OutputWidth() != 1 {
		return fmt.Errorf("synthetic data is scalar: layers must start and end with 1, got %v", cfg.Layers)
	}
	if cfg.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", cfg.Samples)
	}

	var rng *rand.Rand
	if cfg.Seed >= 0 {
		rng = rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // Intentional deterministic seed for reproducibility
	}
	xs, ys := dataset.Generate(cfg.Samples, rng)
	lo, hi, err := dataset.Bounds(ys)
	if err != nil {
		return err
	}
	xScaled, yScaled, err := dataset.ScaleJoint(xs, ys)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.Store, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = history.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "Training %v (%s) on %d samples: epochs=%d lr=%g patience=%d warmup=%d\n",
		cfg.Layers, activation, cfg.Samples, cfg.Epochs, cfg.LearningRate, cfg.Patience, cfg.WarmUpEpochs)

	var epochs []history.Epoch
	trainCfg := train.Config{
		Epochs:        cfg.Epochs,
		LearningRate:  cfg.LearningRate,
		PatienceLimit: cfg.Patience,
		WarmUpEpochs:  cfg.WarmUpEpochs,
		LogEvery:      cfg.LogEvery,
		CheckNumerics: cfg.CheckNumerics,
		Logger:        log.New(out, "", 0),
		OnEpoch: func(s train.EpochStats) {
			epochs = append(epochs, history.Epoch{Epoch: s.Epoch, Loss: s.Loss, State: s.State.String()})
		},
	}

	started := time.Now().UTC()
	result, err := train.NewTrainer(trainCfg, nil).Fit(net, dataset.Columns(xScaled), dataset.Columns(yScaled))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Finished after %d epochs (stopped early: %t), final loss %g, best loss %g\n",
		result.Epochs, result.Stopped, result.FinalLoss, result.BestLoss)

	meanLoss, err := train.Evaluate(net, dataset.Columns(xScaled), dataset.Columns(yScaled),
		nn.WithGuard(cfg.CheckNumerics))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Mean training loss: %g\n", meanLoss)

	for i := 0; i < cfg.Predictions; i++ {
		x, y := dataset.Generate(1, rng)
		scaled, err := dataset.MinMaxScale(x, lo, hi)
		if err != nil {
			return err
		}
		trace, err := net.Predict(nn.Scalar(scaled[0]))
		if err != nil {
			return err
		}
		predicted := trace.Output.At(0, 0)*(hi-lo) + lo
		fmt.Fprintf(out, "Generated: %.4f expect: %.4f predict: %.4f\n", x[0], y[0], predicted)
	}

	record := history.Run{
		ID:            history.NewRunID(),
		Layers:        net.Layers(),
		Activation:    activation.String(),
		LearningRate:  cfg.LearningRate,
		Epochs:        cfg.Epochs,
		PatienceLimit: cfg.Patience,
		WarmUpEpochs:  cfg.WarmUpEpochs,
		EpochsRun:     result.Epochs,
		Stopped:       result.Stopped,
		FinalLoss:     result.FinalLoss,
		BestLoss:      result.BestLoss,
		StartedAt:     started,
	}
	if err := store.SaveRun(ctx, record); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	if err := store.SaveEpochs(ctx, record.ID, epochs); err != nil {
		return fmt.Errorf("save epochs: %w", err)
	}
	fmt.Fprintf(out, "run_id=%s store=%s\n", record.ID, cfg.Store)
	return nil
}

func runHistory(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	storeKind := fs.String("store", "sqlite", "history store backend: memory|sqlite")
	dbPath := fs.String("db-path", "perceptron.db", "sqlite database path")
	runID := fs.String("run", "", "print the epoch losses of this run")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := history.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = history.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}

	if *runID == "" {
		runs, err := store.ListRuns(ctx)
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Fprintf(out, "%s started=%s layers=%v activation=%s epochs=%d/%d stopped=%t final_loss=%g\n",
				r.ID, r.StartedAt.Format(time.RFC3339), r.Layers, r.Activation,
				r.EpochsRun, r.Epochs, r.Stopped, r.FinalLoss)
		}
		return nil
	}

	epochs, ok, err := store.GetEpochs(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run not found: %s", *runID)
	}
	for _, e := range epochs {
		fmt.Fprintf(out, "epoch=%d loss=%g state=%s\n", e.Epoch, e.Loss, e.State)
	}
	return nil
}
