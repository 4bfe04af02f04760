package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skiroute/internal/config"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil, "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}

func TestParse_Full(t *testing.T) {
	t.Setenv("SKIROUTE_TEST_DSN", "postgres://ski@localhost/runs")
	src := []byte(`
log_level  = "DEBUG"
log_format = "json"
output     = "yaml"

solver {
  workers   = 4
  max_cells = 1000
}

server {
  listen = ":8080"
}

storage {
  driver = "postgres"
  dsn    = env.SKIROUTE_TEST_DSN
}
`)
	cfg, err := config.Parse(src, "full.hcl")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, config.Solver{Workers: 4, MaxCells: 1000}, cfg.Solver)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://ski@localhost/runs", cfg.Storage.DSN)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"LogLevel", `log_level = "loud"`},
		{"LogFormat", `log_format = "xml"`},
		{"Output", `output = "csv"`},
		{"NegativeWorkers", "solver {\n  workers = -1\n}"},
		{"Driver", "storage {\n  driver = \"redis\"\n}"},
		{"PostgresNoDSN", "storage {\n  driver = \"postgres\"\n}"},
		{"BadgerNoDir", "storage {\n  driver = \"badger\"\n}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.src), tc.name+".hcl")
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := config.Parse([]byte(`solver {`), "broken.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse broken.hcl")

	_, err = config.Parse([]byte(`unknown = 1`), "unknown.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: decode unknown.hcl")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skiroute.hcl")
	require.NoError(t, os.WriteFile(path, []byte("storage {\n  driver = \"badger\"\n  dir = \"/tmp/ski\"\n}\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Storage{Driver: config.DriverBadger, Dir: "/tmp/ski"}, cfg.Storage)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
