package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/skiroute/gridgraph"
	"github.com/katalvlaran/skiroute/internal/ctxlog"
	"github.com/katalvlaran/skiroute/mapfile"
	"github.com/katalvlaran/skiroute/skiing"
	"github.com/katalvlaran/skiroute/store"
)

// CacheHeader is set to "hit" when /solve answers from the store.
const CacheHeader = "X-Skiroute-Cache"

// DefaultBodyLimit bounds request bodies (64 MiB).
const DefaultBodyLimit = 64 << 20

// Options configures a Server.
type Options struct {
	Logger    *slog.Logger
	Solve     []skiing.Option
	BodyLimit int
}

// Option represents a functional option for configuring a Server.
type Option func(*Options)

// WithLogger sets the request logger. Passing nil has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSolveOptions appends options passed to every skiing.Solve call.
func WithSolveOptions(opts ...skiing.Option) Option {
	return func(o *Options) {
		o.Solve = append(o.Solve, opts...)
	}
}

// WithBodyLimit sets the maximum request body size in bytes.
func WithBodyLimit(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.BodyLimit = n
		}
	}
}

// Server wires a Store to the Fiber routes.
type Server struct {
	app    *fiber.App
	store  store.Store
	logger *slog.Logger
	solve  []skiing.Option
}

// New builds a Server on st.
func New(st store.Store, opts ...Option) *Server {
	cfg := Options{
		Logger:    slog.New(slog.DiscardHandler),
		BodyLimit: DefaultBodyLimit,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		app:    fiber.New(fiber.Config{AppName: "skiroute", BodyLimit: cfg.BodyLimit}),
		store:  st,
		logger: cfg.Logger,
		solve:  cfg.Solve,
	}
	s.routes()

	return s
}

// App returns the underlying Fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	s.app.Use(s.observe)

	s.app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s.app.Post("/solve", s.handleSolve)
	s.app.Get("/runs", s.handleListRuns)
	s.app.Get("/runs/:id", s.handleGetRun)
	s.app.Delete("/runs/:id", s.handleDeleteRun)
}

// observe attaches a request-scoped logger, then counts and logs every
// request.
func (s *Server) observe(c fiber.Ctx) error {
	logger := s.logger.With("request_id", uuid.NewString())
	c.SetContext(ctxlog.WithLogger(c.Context(), logger))

	err := c.Next()

	code := c.Response().StatusCode()
	if err != nil {
		code = fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
	}
	route := c.Route().Path
	httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(code)).Inc()
	logger.Debug("http request", "method", c.Method(), "path", c.Path(), "route", route, "status", code)

	return err
}

// solveRequest is the JSON body of POST /solve. Rows takes precedence over
// Width, Height and Elevations when set.
type solveRequest struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Elevations []int   `json:"elevations"`
	Rows       [][]int `json:"rows"`
}

func (s *Server) handleSolve(c fiber.Ctx) error {
	g, err := s.decodeGrid(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := skiing.Check(g, s.solve...); err != nil {
		return c.Status(solveStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.Context()
	logger := ctxlog.FromContext(ctx)
	if c.Query("refresh") != "true" {
		cached, err := s.store.FindByDigest(ctx, g.Digest())
		switch {
		case err == nil:
			cacheLookups.WithLabelValues("hit").Inc()
			c.Set(CacheHeader, "hit")
			return c.JSON(cached)
		case errors.Is(err, store.ErrRunNotFound):
			cacheLookups.WithLabelValues("miss").Inc()
		default:
			cacheLookups.WithLabelValues("error").Inc()
			logger.Warn("run cache lookup failed", "digest", g.Digest(), "error", err)
		}
	}

	rep, err := skiing.Solve(ctx, g, append([]skiing.Option{skiing.WithLogger(logger)}, s.solve...)...)
	if err != nil {
		return c.Status(solveStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.store.SaveRun(ctx, rep); err != nil {
		logger.Error("saving run failed", "run_id", rep.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(CacheHeader, "miss")

	return c.Status(fiber.StatusCreated).JSON(rep)
}

func (s *Server) decodeGrid(c fiber.Ctx) (*gridgraph.Grid, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return mapfile.Parse(bytes.NewReader(c.Body()))
	}

	var req solveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return nil, errors.New("invalid body")
	}
	if req.Rows != nil {
		return gridgraph.From2D(req.Rows)
	}

	return gridgraph.NewGrid(req.Width, req.Height, req.Elevations)
}

func solveStatus(err error) int {
	switch {
	case errors.Is(err, skiing.ErrGridTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, gridgraph.ErrEmptyGrid):
		return fiber.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) handleListRuns(c fiber.Ctx) error {
	limit := 0
	if q := c.Query("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a non-negative integer"})
		}
		limit = n
	}

	runs, err := s.store.ListRuns(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if runs == nil {
		runs = []skiing.Report{}
	}

	return c.JSON(runs)
}

func (s *Server) handleGetRun(c fiber.Ctx) error {
	rep, err := s.store.GetRun(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(rep)
}

func (s *Server) handleDeleteRun(c fiber.Ctx) error {
	err := s.store.DeleteRun(c.Context(), c.Params("id"))
	if errors.Is(err, store.ErrRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
