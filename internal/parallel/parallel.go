// Package parallel splits index ranges across a bounded set of goroutines.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of goroutines running at once.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1024, // Elementwise bodies are a few ns each.
	}
}

// Sequential returns a config that runs everything on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1}
}

// Range is a half-open index range [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns Hi - Lo.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Partitions returns the disjoint ranges ForRange would run for n items.
// Their union is exactly [0, n); n <= 0 yields none.
func Partitions(n int, cfg Config) []Range {
	if n <= 0 {
		return nil
	}
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		return []Range{{0, n}}
	}

	workers := cfg.NumWorkers
	chunk := max((n+workers-1)/workers, cfg.MinChunkSize, 1)
	parts := make([]Range, 0, (n+chunk-1)/chunk)
	for lo := 0; lo < n; lo += chunk {
		parts = append(parts, Range{lo, min(lo+chunk, n)})
	}
	return parts
}

// ForRange executes f(lo, hi) once per partition of [0, n) and blocks until
// every call has returned. Falls back to a single call on the current
// goroutine if parallelism is disabled or n is too small.
func ForRange(n int, f func(lo, hi int), cfg Config) {
	parts := Partitions(n, cfg)
	if len(parts) <= 1 {
		for _, p := range parts {
			f(p.Lo, p.Hi)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for _, p := range parts {
		g.Go(func() error {
			f(p.Lo, p.Hi)
			return nil
		})
	}
	_ = g.Wait() // Workers never fail.
}

// For executes f(i) for i in [0, n) with optional parallelism.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			f(i)
		}
	}, cfg)
}
