package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "ensemble.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 1, cfg.Consolidate.EntityMinVotes)
	assert.Equal(t, 2, cfg.Consolidate.TripleMinVotes)
	assert.Equal(t, 4, cfg.Consolidate.Workers)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
store:
  driver: postgres
  database_url: postgres://localhost/ensemble
consolidate:
  triple_min_votes: 3
  workers: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/ensemble", cfg.Store.DatabaseURL)
	assert.Equal(t, 3, cfg.Consolidate.TripleMinVotes)
	assert.Equal(t, 8, cfg.Consolidate.Workers)

	// Unset keys keep their defaults.
	assert.Equal(t, 1, cfg.Consolidate.EntityMinVotes)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENSEMBLE_CONSOLIDATE_TRIPLE_MIN_VOTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Consolidate.TripleMinVotes)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	require.Error(t, err)
}
