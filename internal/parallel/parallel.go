// Package parallel fans read-only per-sample work out over goroutines.
//
// Training itself is strictly sequential (each sample updates the network
// before the next one is seen); only passes that leave the network untouched,
// such as evaluating the loss over a dataset, go through this package.
package parallel

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled
	NumWorkers   int  // Upper bound on goroutines
	MinChunkSize int  // Minimum samples per goroutine
}

// DefaultConfig returns defaults based on CPU count.
//
// A forward pass through a small network is cheap, so chunks are kept large.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 256,
	}
}

// For executes f(i) for i in [0, n), each index exactly once.
//
// Runs sequentially when parallelism is disabled or n is below MinChunkSize.
// f must be safe to call concurrently for distinct indices.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Sum returns f(0) + ... + f(n-1).
//
// Terms are added in index order after all of them are computed, so the
// result does not depend on scheduling.
func Sum(n int, f func(i int) float64, cfg Config) float64 {
	terms := make([]float64, n)
	For(n, func(i int) {
		terms[i] = f(i)
	}, cfg)
	return floats.Sum(terms)
}
