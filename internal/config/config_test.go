package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/vitalchart/internal/config"
	"codeberg.org/mutker/vitalchart/internal/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vitalchart.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
width = 1200
height = 500
timezone = "America/New_York"
locale = "de-DE"
connect_gaps = true
x_ticks = 8
format = "svg"
database = "/path/to/samples.db"
log_level = "debug"
`)

	// Set environment variable to point to the test config file
	t.Setenv("VITALCHART_CONFIG", configPath)

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.Width, "Expected Width 1200")
	assert.Equal(t, 500, cfg.Height, "Expected Height 500")
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "de-DE", cfg.Locale)
	assert.True(t, cfg.ConnectGaps, "Expected ConnectGaps true")
	assert.Equal(t, 8, cfg.XTicks)
	assert.Equal(t, "svg", cfg.Format)
	assert.Equal(t, "/path/to/samples.db", cfg.Database)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaults(t *testing.T) {
	// Ensure no config file is used
	t.Setenv("VITALCHART_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load(nil)
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, 960, cfg.Width)
	assert.Equal(t, 420, cfg.Height)
	assert.Equal(t, 70, cfg.MarginLeft)
	assert.Equal(t, "America/Los_Angeles", cfg.Timezone)
	assert.False(t, cfg.ConnectGaps)
	assert.Equal(t, 6, cfg.XTicks)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	configPath := writeConfig(t, `
This is not a valid TOML file
`)
	t.Setenv("VITALCHART_CONFIG", configPath)

	_, err := config.Load(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, config.ErrReadConfig))
}

func TestMissingExplicitConfigFile(t *testing.T) {
	t.Setenv("VITALCHART_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := config.Load(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, config.ErrReadConfig))
}

func TestInvalidLogLevel(t *testing.T) {
	t.Setenv("VITALCHART_CONFIG", writeConfig(t, `log_level = "invalid"`))

	_, err := config.Load(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, config.ErrInvalidLogLevel))
}

func TestInvalidDimensions(t *testing.T) {
	for _, content := range []string{`width = 0`, `width = 10001`, `height = 2000000000`} {
		t.Run(content, func(t *testing.T) {
			t.Setenv("VITALCHART_CONFIG", writeConfig(t, content))

			_, err := config.Load(nil)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, config.ErrInvalidDimensions))
		})
	}
}

func TestInvalidTickCount(t *testing.T) {
	for _, content := range []string{`x_ticks = 1`, `x_ticks = 51`} {
		t.Run(content, func(t *testing.T) {
			t.Setenv("VITALCHART_CONFIG", writeConfig(t, content))

			_, err := config.Load(nil)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, config.ErrInvalidConfig))
		})
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	t.Setenv("VITALCHART_CONFIG", writeConfig(t, `format = "gif"`))

	_, err := config.Load(nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, config.ErrInvalidFormat))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("VITALCHART_CONFIG", writeConfig(t, `height = 300`))
	t.Setenv("VITALCHART_HEIGHT", "640")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Height)
}

func TestFlagsOverrideFile(t *testing.T) {
	t.Setenv("VITALCHART_CONFIG", writeConfig(t, `
log_level = "error"
width = 800
`))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--connect-gaps"}))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel to be set by flag")
	assert.True(t, cfg.ConnectGaps)
	assert.Equal(t, 800, cfg.Width, "Unset flag must not override the file")
}

func TestView(t *testing.T) {
	t.Setenv("VITALCHART_CONFIG", writeConfig(t, `connect_gaps = true`))

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	view := cfg.View()
	assert.True(t, view.ConnectGaps)
	assert.Equal(t, cfg.Width, view.Width)
	assert.InDelta(t, 70, view.Margins.Left, 1e-9)
}
