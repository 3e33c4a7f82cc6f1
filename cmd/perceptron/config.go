package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/perceptron/internal/train"
)

// runConfig is the full set of knobs for the train command.
//
// Values come from defaults, then an optional YAML file, then flags that were
// set explicitly on the command line.
type runConfig struct {
	Layers        []int   `yaml:"layers"`
	Activation    string  `yaml:"activation"`
	Epochs        int     `yaml:"epochs"`
	LearningRate  float64 `yaml:"learning_rate"`
	Patience      int     `yaml:"patience"`
	WarmUpEpochs  int     `yaml:"warm_up_epochs"`
	Samples       int     `yaml:"samples"`
	Seed          int64   `yaml:"seed"`
	CheckNumerics bool    `yaml:"check_numerics"`
	LogEvery      int     `yaml:"log_every"`
	Predictions   int     `yaml:"predictions"`
	Store         string  `yaml:"store"`
	DBPath        string  `yaml:"db_path"`
}

func defaultRunConfig() runConfig {
	defaults := train.DefaultConfig()
	return runConfig{
		Layers:       []int{1, 4, 3, 2, 1},
		Activation:   "identity",
		Epochs:       defaults.Epochs,
		LearningRate: defaults.LearningRate,
		Patience:     defaults.PatienceLimit,
		WarmUpEpochs: defaults.WarmUpEpochs,
		Samples:      1000,
		Seed:         -1,
		LogEvery:     defaults.LogEvery,
		Predictions:  10,
		Store:        "memory",
		DBPath:       "perceptron.db",
	}
}

func loadRunConfig(path string, base runConfig) (runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return runConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// parseTrainFlags resolves the train command configuration from args.
func parseTrainFlags(args []string) (runConfig, error) {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	defaults := defaultRunConfig()
	flagged := defaults

	configPath := fs.String("config", "", "YAML run config; explicit flags override it")
	layers := fs.String("layers", formatLayers(defaults.Layers), "comma-separated layer widths")
	fs.StringVar(&flagged.Activation, "activation", defaults.Activation, "activation: identity|relu")
	fs.IntVar(&flagged.Epochs, "epochs", defaults.Epochs, "epoch budget")
	fs.Float64Var(&flagged.LearningRate, "lr", defaults.LearningRate, "learning rate")
	fs.IntVar(&flagged.Patience, "patience", defaults.Patience, "non-improving epochs before stopping (0 disables)")
	fs.IntVar(&flagged.WarmUpEpochs, "warmup", defaults.WarmUpEpochs, "epochs before early stopping monitors the loss")
	fs.IntVar(&flagged.Samples, "samples", defaults.Samples, "number of synthetic training samples")
	fs.Int64Var(&flagged.Seed, "seed", defaults.Seed, "random seed (-1 = random)")
	fs.BoolVar(&flagged.CheckNumerics, "check-numerics", defaults.CheckNumerics, "fail on NaN/Inf after every layer")
	fs.IntVar(&flagged.LogEvery, "log-every", defaults.LogEvery, "log the loss every N epochs")
	fs.IntVar(&flagged.Predictions, "predictions", defaults.Predictions, "fresh samples to predict after training")
	fs.StringVar(&flagged.Store, "store", defaults.Store, "history store backend: memory|sqlite")
	fs.StringVar(&flagged.DBPath, "db-path", defaults.DBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return runConfig{}, err
	}

	parsedLayers, err := parseLayers(*layers)
	if err != nil {
		return runConfig{}, err
	}
	flagged.Layers = parsedLayers

	if *configPath == "" {
		return flagged, nil
	}

	cfg, err := loadRunConfig(*configPath, defaults)
	if err != nil {
		return runConfig{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "layers":
			cfg.Layers = flagged.Layers
		case "activation":
			cfg.Activation = flagged.Activation
		case "epochs":
			cfg.Epochs = flagged.Epochs
		case "lr":
			cfg.LearningRate = flagged.LearningRate
		case "patience":
			cfg.Patience = flagged.Patience
		case "warmup":
			cfg.WarmUpEpochs = flagged.WarmUpEpochs
		case "samples":
			cfg.Samples = flagged.Samples
		case "seed":
			cfg.Seed = flagged.Seed
		case "check-numerics":
			cfg.CheckNumerics = flagged.CheckNumerics
		case "log-every":
			cfg.LogEvery = flagged.LogEvery
		case "predictions":
			cfg.Predictions = flagged.Predictions
		case "store":
			cfg.Store = flagged.Store
		case "db-path":
			cfg.DBPath = flagged.DBPath
		}
	})
	return cfg, nil
}

func parseLayers(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	layers := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		width, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid layer width %q: %w", f, err)
		}
		layers = append(layers, width)
	}
	return layers, nil
}

func formatLayers(layers []int) string {
	parts := make([]string, len(layers))
	for i, width := range layers {
		parts[i] = strconv.Itoa(width)
	}
	return strings.Join(parts, ",")
}
