package skiing

import (
	"log/slog"
	"runtime"

	"github.com/katalvlaran/skiroute/longest"
)

// Progress reports one finished root.
type Progress struct {
	Done        int // roots finished so far, including this one
	Total       int // roots in the grid
	Root        int // grid index of the finished root
	MaxDistance int // longest distance found from Root
}

// ProgressFunc receives progress events. It is called from a single
// goroutine, in completion order, never concurrently.
type ProgressFunc func(Progress)

// Options configures Solve.
//
// Workers  – number of concurrent root workers. Default GOMAXPROCS.
// Logger   – structured logger. Default discards.
// Progress – optional per-root callback.
// Weight   – edge weighting passed to longest.Solve. Default unit weight.
// MaxCells – reject grids with more cells; 0 disables the limit.
type Options struct {
	Workers  int
	Logger   *slog.Logger
	Progress ProgressFunc
	Weight   longest.WeightFunc
	MaxCells int
}

// Option represents a functional option for configuring Solve.
type Option func(*Options)

// DefaultOptions returns the defaults described on Options.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  slog.New(slog.DiscardHandler),
		Weight:  longest.UnitWeight,
	}
}

// WithWorkers sets the worker count. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithLogger sets the logger. Passing nil has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithProgress installs a per-root progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

// WithWeight sets an alternate edge weighting. Passing nil has no effect.
func WithWeight(fn longest.WeightFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Weight = fn
		}
	}
}

// WithMaxCells rejects grids larger than n cells with ErrGridTooLarge.
func WithMaxCells(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxCells = n
		}
	}
}
