package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/skiroute/internal/app"
	"github.com/katalvlaran/skiroute/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("skiroute", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
skiroute - finds the longest, then steepest, downhill ski route on an elevation map.

Usage:
  skiroute [options] MAP_FILE
  skiroute -serve [options]

Arguments:
  MAP_FILE
    Text file: width and height, then width*height elevations.

Options:
`)
		flagSet.PrintDefaults()
	}

	def := config.Default()
	configFlag := flagSet.String("config", "", "Path to an HCL configuration file.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent root workers. 0 uses GOMAXPROCS.")
	maxCellsFlag := flagSet.Int("max-cells", 0, "Reject maps with more cells. 0 disables the limit.")
	logLevelFlag := flagSet.String("log-level", def.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'.")
	formatFlag := flagSet.String("format", def.Output, "Report format. Options: 'text', 'json', 'yaml'.")
	serveFlag := flagSet.Bool("serve", false, "Run the HTTP service instead of solving MAP_FILE.")
	listenFlag := flagSet.String("listen", def.Server.Listen, "HTTP listen address for -serve.")
	storeFlag := flagSet.String("store", def.Storage.Driver, "Run storage. Options: 'memory', 'badger', 'postgres'.")
	badgerDirFlag := flagSet.String("badger-dir", "", "Badger data directory for -store badger.")
	databaseURLFlag := flagSet.String("database-url", "", "PostgreSQL connection string for -store postgres.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := def
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = *loaded
		slog.Debug("Configuration file loaded.", "path", *configFlag)
	}

	// Explicit flags win over the file.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Solver.Workers = *workersFlag
		case "max-cells":
			cfg.Solver.MaxCells = *maxCellsFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		case "format":
			cfg.Output = *formatFlag
		case "listen":
			cfg.Server.Listen = *listenFlag
		case "store":
			cfg.Storage.Driver = *storeFlag
		case "badger-dir":
			cfg.Storage.Dir = *badgerDirFlag
		case "database-url":
			cfg.Storage.DSN = *databaseURLFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	mapPath := flagSet.Arg(0)
	if !*serveFlag && mapPath == "" {
		slog.Debug("No map path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected one MAP_FILE, got %d arguments", flagSet.NArg())}
	}

	appCfg := &app.Config{Config: cfg, MapPath: mapPath, Serve: *serveFlag}
	slog.Debug("CLI parser finished successfully.", "config", appCfg)

	return appCfg, false, nil
}
