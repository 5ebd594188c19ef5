package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this file use t.Setenv and therefore do not run in parallel.

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvSeedPath, EnvSeedDriver, EnvLogLevel, EnvLogFile, EnvThemeFile, EnvNoColor} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultUser, cfg.Session.DefaultUser)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Seed.Driver)
	assert.Equal(t, DefaultColorScheme(), cfg.ColorScheme)
}

func TestLoadConfigWithFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	content := `seed:
  driver: sqlite
  path: /tmp/board.db
session:
  default_user: admin123
theme:
  preset: monochrome
  accent: "#FF0000"
`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dealflow"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dealflow", "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SeedConfig{Driver: "sqlite", Path: "/tmp/board.db"}, cfg.Seed)
	assert.Equal(t, "admin123", cfg.Session.DefaultUser)
	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	// unspecified values come from the chosen preset
	assert.Equal(t, MonochromeColorScheme().Title, cfg.ColorScheme.Title)
}

func TestLoad_NoColorOverridesTheme(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvNoColor, "1")

	content := "theme:\n  accent: \"#FF0000\"\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dealflow"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dealflow", "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, MonochromeColorScheme(), cfg.ColorScheme)

	t.Setenv(EnvNoColor, "")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, DefaultColorScheme().Title, cfg.ColorScheme.Title)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: [unclosed"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed:\n  driver: yaml\n  path: a.yaml\nlog:\n  level: warn\n"), 0o644))

	t.Setenv(EnvSeedPath, "b.db")
	t.Setenv(EnvSeedDriver, "SQLITE")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFile, "-")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, SeedConfig{Driver: "sqlite", Path: "b.db"}, cfg.Seed)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "-", cfg.Log.File)
}

func TestThemeFileLoading(t *testing.T) {
	clearEnv(t)
	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte("theme:\n  accent: \"#00FF00\"\n  full_badge: \"#0000FF\"\n"), 0o644))
	t.Setenv(EnvThemeFile, themePath)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "#00FF00", cfg.ColorScheme.Accent)
	assert.Equal(t, "#0000FF", cfg.ColorScheme.FullBadge)
	assert.NotEmpty(t, cfg.ColorScheme.ErrorFg, "other colors keep defaults")
}

func TestSaveConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Seed = SeedConfig{Driver: "yaml", Path: "board.yaml"}
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLogConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, LogConfig{Level: "ERROR"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "chatty"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogConfig{}.SlogLevel())
}
