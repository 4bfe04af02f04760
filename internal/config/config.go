// Package config loads skiroute settings from an HCL file.
//
//	log_level  = "info"
//	log_format = "json"
//	output     = "text"
//
//	solver {
//	  workers   = 8
//	  max_cells = 25000000
//	}
//
//	server {
//	  listen = ":3000"
//	}
//
//	storage {
//	  driver = "postgres"
//	  dsn    = env.DATABASE_URL
//	}
//
// Every attribute and block is optional; omitted values keep their defaults.
// Expressions may read the process environment through the env object.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

// Config holds the resolved settings.
type Config struct {
	LogLevel  string
	LogFormat string
	Output    string
	Solver    Solver
	Server    Server
	Storage   Storage
}

// Solver tunes the route search.
type Solver struct {
	Workers  int // 0 means GOMAXPROCS
	MaxCells int // 0 disables the limit
}

// Server configures the HTTP service.
type Server struct {
	Listen string
}

// Storage selects where finished runs are kept.
type Storage struct {
	Driver string
	DSN    string // postgres connection string
	Dir    string // badger directory
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Output:    "text",
		Server:    Server{Listen: ":3000"},
		Storage:   Storage{Driver: DriverMemory},
	}
}

// fileRoot mirrors the HCL file layout.
type fileRoot struct {
	LogLevel  string        `hcl:"log_level,optional"`
	LogFormat string        `hcl:"log_format,optional"`
	Output    string        `hcl:"output,optional"`
	Solver    *solverBlock  `hcl:"solver,block"`
	Server    *serverBlock  `hcl:"server,block"`
	Storage   *storageBlock `hcl:"storage,block"`
}

type solverBlock struct {
	Workers  int `hcl:"workers,optional"`
	MaxCells int `hcl:"max_cells,optional"`
}

type serverBlock struct {
	Listen string `hcl:"listen,optional"`
}

type storageBlock struct {
	Driver string `hcl:"driver,optional"`
	DSN    string `hcl:"dsn,optional"`
	Dir    string `hcl:"dir,optional"`
}

// Load reads and validates the HCL file at path, layered over Default.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(src, path)
}

// Parse decodes HCL source; filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %w", filename, diags)
	}

	cfg := Default()
	cfg.merge(root)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// evalContext exposes the environment as env.NAME.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func (c *Config) merge(r fileRoot) {
	setString(&c.LogLevel, r.LogLevel)
	setString(&c.LogFormat, r.LogFormat)
	setString(&c.Output, r.Output)
	if r.Solver != nil {
		c.Solver.Workers = r.Solver.Workers
		c.Solver.MaxCells = r.Solver.MaxCells
	}
	if r.Server != nil {
		setString(&c.Server.Listen, r.Server.Listen)
	}
	if r.Storage != nil {
		setString(&c.Storage.Driver, r.Storage.Driver)
		setString(&c.Storage.DSN, r.Storage.DSN)
		setString(&c.Storage.Dir, r.Storage.Dir)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks enumerations and driver requirements.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	c.Output = strings.ToLower(c.Output)
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q must be 'debug', 'info', 'warn', or 'error'", ErrInvalid, c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format %q must be 'text' or 'json'", ErrInvalid, c.LogFormat)
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: output %q must be 'text', 'json', or 'yaml'", ErrInvalid, c.Output)
	}
	if c.Solver.Workers < 0 || c.Solver.MaxCells < 0 {
		return fmt.Errorf("%w: solver workers and max_cells must not be negative", ErrInvalid)
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverBadger:
		if c.Storage.Dir == "" {
			return fmt.Errorf("%w: storage driver badger requires dir", ErrInvalid)
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("%w: storage driver postgres requires dsn", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: storage driver %q must be 'memory', 'badger', or 'postgres'", ErrInvalid, c.Storage.Driver)
	}

	return nil
}
