// Package skiing runs the full route search over an elevation grid:
// roots → per-root descent DAG → topological order → longest paths →
// global longest filter → global steepest filter.
//
// Roots are independent, so Solve fans them out to a bounded worker pool.
// Each worker owns its descent.Builder and every per-root table; the grid is
// the only shared value and is read-only. Results stream into a single
// collector that keeps only the candidates tied for the longest distance.
// The context is checked between roots and inside the topological sort.
package skiing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/skiroute/descent"
	"github.com/katalvlaran/skiroute/gridgraph"
	"github.com/katalvlaran/skiroute/longest"
	"github.com/katalvlaran/skiroute/steepest"
	"github.com/katalvlaran/skiroute/topo"
)

var (
	// ErrNilGrid is returned when Solve receives a nil grid.
	ErrNilGrid = errors.New("skiing: grid is nil")

	// ErrGridTooLarge is returned when the grid exceeds Options.MaxCells.
	ErrGridTooLarge = errors.New("skiing: grid exceeds cell limit")
)

const tracerName = "github.com/katalvlaran/skiroute/skiing"

// Report is the outcome of one Solve run.
type Report struct {
	ID          string           `json:"id" yaml:"id"`
	Digest      string           `json:"digest" yaml:"digest"`
	Width       int              `json:"width" yaml:"width"`
	Height      int              `json:"height" yaml:"height"`
	Roots       int              `json:"roots" yaml:"roots"`
	MaxDistance int              `json:"maxDistance" yaml:"maxDistance"`
	Routes      []steepest.Route `json:"routes" yaml:"routes"`
	Elapsed     time.Duration    `json:"elapsed" yaml:"elapsed"`
	CreatedAt   time.Time        `json:"createdAt" yaml:"createdAt"`
}

// Solve computes the steepest of the longest descent routes of g.
// It returns ctx.Err() if ctx is canceled before every root is solved.
func Solve(ctx context.Context, g *gridgraph.Grid, opts ...Option) (rep *Report, err error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := check(g, cfg); err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "skiing.Solve",
		trace.WithAttributes(
			attribute.Int("grid.width", g.Width()),
			attribute.Int("grid.height", g.Height()),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		solveDuration.Observe(time.Since(start).Seconds())
		switch {
		case err == nil:
			solveTotal.WithLabelValues("ok").Inc()
			span.SetStatus(codes.Ok, "solved")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			solveTotal.WithLabelValues("canceled").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "canceled")
		default:
			solveTotal.WithLabelValues("error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "solve failed")
		}
	}()

	log := cfg.Logger
	roots := descent.Roots(g)
	log.Info("Found roots.", "count", len(roots), "width", g.Width(), "height", g.Height())
	span.AddEvent("roots_found", trace.WithAttributes(attribute.Int("roots", len(roots))))

	acc, err := solveRoots(ctx, g, roots, cfg)
	if err != nil {
		return nil, err
	}

	routes, err := acc.Routes(g)
	if err != nil {
		return nil, err
	}
	maxDist, _ := acc.MaxDistance()

	rep = &Report{
		ID:          uuid.NewString(),
		Digest:      g.Digest(),
		Width:       g.Width(),
		Height:      g.Height(),
		Roots:       len(roots),
		MaxDistance: maxDist,
		Routes:      routes,
		Elapsed:     time.Since(start),
		CreatedAt:   start.UTC(),
	}
	span.SetAttributes(
		attribute.Int("result.max_distance", maxDist),
		attribute.Int("result.routes", len(routes)),
	)
	log.Info("Solve complete.", "id", rep.ID, "maxDistance", maxDist, "routes", len(routes), "elapsed", rep.Elapsed)

	return rep, nil
}

// Check reports whether Solve would accept g under opts without solving it:
// ErrNilGrid, gridgraph.ErrEmptyGrid or ErrGridTooLarge. Callers that answer
// from a cache use it so cached answers obey the same limits.
func Check(g *gridgraph.Grid, opts ...Option) error {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return check(g, cfg)
}

func check(g *gridgraph.Grid, cfg Options) error {
	switch {
	case g == nil:
		return ErrNilGrid
	case g.Len() == 0:
		return fmt.Errorf("skiing: %w", gridgraph.ErrEmptyGrid)
	case cfg.MaxCells > 0 && g.Len() > cfg.MaxCells:
		return fmt.Errorf("%w: %d cells, limit %d", ErrGridTooLarge, g.Len(), cfg.MaxCells)
	}

	return nil
}

// solveRoots fans roots out to cfg.Workers workers and reduces their
// results in the calling goroutine.
func solveRoots(ctx context.Context, g *gridgraph.Grid, roots []int, cfg Options) (*steepest.Accumulator, error) {
	workers := min(cfg.Workers, len(roots))
	if workers < 1 {
		workers = 1
	}

	eg, egctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	results := make(chan *longest.Result, workers)

	eg.Go(func() error {
		defer close(jobs)
		for _, r := range roots {
			select {
			case jobs <- r:
			case <-egctx.Done():
				return egctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			return work(egctx, g, cfg, jobs, results)
		})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- eg.Wait()
		close(results)
	}()

	acc := &steepest.Accumulator{}
	for res := range results {
		acc.AddResult(res)
		p := Progress{Done: acc.Results(), Total: len(roots), Root: res.Root, MaxDistance: res.MaxDistance}
		cfg.Logger.Debug("Root solved.", "done", p.Done, "total", p.Total, "root", p.Root, "maxDistance", p.MaxDistance)
		if cfg.Progress != nil {
			cfg.Progress(p)
		}
	}
	if err := <-waitErr; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return acc, nil
}

// work solves roots from jobs until the channel closes or ctx ends.
func work(ctx context.Context, g *gridgraph.Grid, cfg Options, jobs <-chan int, out chan<- *longest.Result) error {
	b, err := descent.NewBuilder(g)
	if err != nil {
		return err
	}
	for root := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := solveRoot(ctx, b, root, cfg.Weight)
		if err != nil {
			cfg.Logger.Error("Root failed.", slog.Int("root", root), slog.String("error", err.Error()))
			return err
		}
		rootsProcessed.Inc()
		select {
		case out <- res:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// solveRoot runs build, sort and solve for one root.
func solveRoot(ctx context.Context, b *descent.Builder, root int, weight longest.WeightFunc) (*longest.Result, error) {
	d, err := b.Build(root)
	if err != nil {
		return nil, err
	}
	dagNodes.Observe(float64(d.Len()))

	order, err := topo.Sort(d, 0, topo.WithCancelContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("root %d: %w", root, err)
	}
	res, err := longest.Solve(d, 0, order, longest.WithWeight(weight))
	if err != nil {
		return nil, fmt.Errorf("root %d: %w", root, err)
	}

	return res, nil
}
