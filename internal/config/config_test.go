package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jselect/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	w := cfg.Widget
	assert.Equal(t, domain.ModeSingle, w.SelectionMode())
	assert.False(t, w.Remote())
	assert.Equal(t, 3, w.MinRemoteSearchLength)
	assert.Equal(t, 300*time.Millisecond, w.Debounce())
	assert.Equal(t, "term", w.SearchParam)
	assert.True(t, w.KeepSingleSelectOption)
	assert.True(t, w.BlurMultiAfterSelect)
	assert.Equal(t, "Enter at least 3 characters", w.Messages.TooShortMessage(3))
	assert.Equal(t, "No matches found.", w.Messages.NoMatch)
}

func TestCanClear(t *testing.T) {
	w := DefaultConfig().Widget
	assert.False(t, w.CanClear(), "single without placeholder")

	w.Placeholder = "Pick one"
	assert.True(t, w.CanClear())

	w.Placeholder = ""
	w.Mode = "multi"
	assert.True(t, w.CanClear())

	w.AllowClear = false
	assert.False(t, w.CanClear())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad mode", func(c *Config) { c.Widget.Mode = "triple" }, "widget.mode"},
		{"negative min length", func(c *Config) { c.Widget.MinRemoteSearchLength = -1 }, "min_remote_search_length"},
		{"negative debounce", func(c *Config) { c.Widget.DebounceMillis = -5 }, "debounce_ms"},
		{"non http url", func(c *Config) { c.Widget.URL = "ftp://x" }, "widget.url"},
		{"missing search param", func(c *Config) {
			c.Widget.URL = "https://x"
			c.Widget.SearchParam = ""
		}, "search_param"},
		{"height", func(c *Config) { c.UISettings.Height = 0 }, "ui.height"},
		{"output", func(c *Config) { c.UISettings.Output = "xml" }, "ui.output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveLoadRoundTripPerFormat(t *testing.T) {
	dir := t.TempDir()
	cs := NewConfigService()

	for _, name := range []string{"c.toml", "c.yaml", "c.json"} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Widget.Mode = "multi"
			cfg.Widget.URL = "https://example.com/search"
			cfg.Widget.Messages.NoMatch = "nothing"

			path := filepath.Join(dir, name)
			require.NoError(t, cs.SaveToPath(cfg, path))
			got, err := cs.LoadFromPath(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("widget:\n  placeholder: Choose\n"), 0644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Choose", cfg.Widget.Placeholder)
	assert.Equal(t, 3, cfg.Widget.MinRemoteSearchLength)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "not found")
}

func TestApplyFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-m", "--no-clear", "--debounce", "150ms", "--url", "https://x", "-vv"}))

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyFlags(fs))
	assert.Equal(t, domain.ModeMulti, cfg.Widget.SelectionMode())
	assert.False(t, cfg.Widget.AllowClear)
	assert.Equal(t, 150, cfg.Widget.DebounceMillis)
	assert.Equal(t, "https://x", cfg.Widget.URL)
	assert.Equal(t, 2, cfg.UISettings.LogLevel)
	assert.Equal(t, 3, cfg.Widget.MinRemoteSearchLength, "unset flags keep the config value")
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("a.YML"))
	assert.Equal(t, FormatJSON, FormatOf("a.json"))
	assert.Equal(t, FormatTOML, FormatOf("a.toml"))
	assert.Equal(t, FormatTOML, FormatOf("noext"))
}
