package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/skiroute/internal/config"
	"github.com/katalvlaran/skiroute/internal/ctxlog"
	"github.com/katalvlaran/skiroute/internal/render"
	"github.com/katalvlaran/skiroute/mapfile"
	"github.com/katalvlaran/skiroute/server"
	"github.com/katalvlaran/skiroute/skiing"
	"github.com/katalvlaran/skiroute/store"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// Config is everything one invocation needs.
type Config struct {
	config.Config
	MapPath string // map file to solve; ignored when Serve is set
	Serve   bool   // run the HTTP service instead of a one-shot solve
}

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
}

// NewApp builds an App. Reports go to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{outW: outW, logger: logger, cfg: cfg}
}

// Run executes the configured mode until it finishes or ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	st, closeStore, err := openStore(ctx, a.cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()
	a.logger.Debug("Store opened.", "driver", a.cfg.Storage.Driver)

	if a.cfg.Serve {
		return a.serve(ctx, st)
	}

	return a.solveFile(ctx, st)
}

func (a *App) solveOptions() []skiing.Option {
	return []skiing.Option{
		skiing.WithWorkers(a.cfg.Solver.Workers),
		skiing.WithMaxCells(a.cfg.Solver.MaxCells),
	}
}

func (a *App) solveFile(ctx context.Context, st store.Store) error {
	logger := ctxlog.FromContext(ctx)

	g, err := mapfile.ParseFile(a.cfg.MapPath)
	if err != nil {
		return err
	}
	logger.Info("Map loaded.", "path", a.cfg.MapPath, "width", g.Width(), "height", g.Height())

	if err := skiing.Check(g, a.solveOptions()...); err != nil {
		return err
	}

	rep, err := st.FindByDigest(ctx, g.Digest())
	switch {
	case err == nil:
		logger.Info("Using stored run.", "run_id", rep.ID)
	case errors.Is(err, store.ErrRunNotFound):
		opts := append(a.solveOptions(),
			skiing.WithLogger(logger),
			skiing.WithProgress(func(p skiing.Progress) {
				logger.Debug("Root solved.", "done", p.Done, "total", p.Total, "root", p.Root, "max_distance", p.MaxDistance)
			}),
		)
		rep, err = skiing.Solve(ctx, g, opts...)
		if err != nil {
			return err
		}
		if err := st.SaveRun(ctx, rep); err != nil {
			return err
		}
	default:
		return fmt.Errorf("app: lookup stored run: %w", err)
	}

	return render.Report(a.outW, rep, a.cfg.Output)
}

func (a *App) serve(ctx context.Context, st store.Store) error {
	srv := server.New(st,
		server.WithLogger(a.logger),
		server.WithSolveOptions(a.solveOptions()...),
	)

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(a.cfg.Server.Listen) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down http server.")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return <-errc
}
