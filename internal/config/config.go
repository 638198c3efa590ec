package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"jselect/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Version    int        `toml:"version" yaml:"version" json:"version"`
	Widget     Widget     `toml:"widget" yaml:"widget" json:"widget"`
	UISettings UISettings `toml:"ui" yaml:"ui" json:"ui"`
}

// Widget configures the selection engine
type Widget struct {
	Mode        string `toml:"mode" yaml:"mode" json:"mode"`
	URL         string `toml:"url" yaml:"url" json:"url"` // empty means local filtering
	Name        string `toml:"name" yaml:"name" json:"name"`
	Placeholder string `toml:"placeholder" yaml:"placeholder" json:"placeholder"`
	Required    bool   `toml:"required" yaml:"required" json:"required"`
	Disabled    bool   `toml:"disabled" yaml:"disabled" json:"disabled"`
	NoSearch    bool   `toml:"no_search" yaml:"no_search" json:"no_search"`

	AllowClear             bool `toml:"allow_clear" yaml:"allow_clear" json:"allow_clear"`
	KeepSingleSelectOption bool `toml:"keep_single_select_option" yaml:"keep_single_select_option" json:"keep_single_select_option"`
	BlurMultiAfterSelect   bool `toml:"blur_multi_after_select" yaml:"blur_multi_after_select" json:"blur_multi_after_select"`

	MinRemoteSearchLength int    `toml:"min_remote_search_length" yaml:"min_remote_search_length" json:"min_remote_search_length"`
	DebounceMillis        int    `toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
	RequestTimeoutMillis  int    `toml:"request_timeout_ms" yaml:"request_timeout_ms" json:"request_timeout_ms"`
	SearchParam           string `toml:"search_param" yaml:"search_param" json:"search_param"`

	Messages Messages `toml:"messages" yaml:"messages" json:"messages"`
}

// Messages are the user-facing texts of the widget.
// TooShort may contain a single %d for the minimum length.
type Messages struct {
	TooShort string `toml:"too_short" yaml:"too_short" json:"too_short"`
	NoMatch  string `toml:"no_match" yaml:"no_match" json:"no_match"`
	Required string `toml:"required" yaml:"required" json:"required"`
}

// UISettings represents terminal front-end configuration
type UISettings struct {
	Height   int    `toml:"height" yaml:"height" json:"height"` // option rows shown
	ShowHelp bool   `toml:"show_help" yaml:"show_help" json:"show_help"`
	LogFile  string `toml:"log_file" yaml:"log_file" json:"log_file"`
	LogLevel int    `toml:"log_level" yaml:"log_level" json:"log_level"`
	Output   string `toml:"output" yaml:"output" json:"output"` // json | form | lines
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Widget: Widget{
			Mode:                   "single",
			AllowClear:             true,
			KeepSingleSelectOption: true,
			BlurMultiAfterSelect:   true,
			MinRemoteSearchLength:  3,
			DebounceMillis:         300,
			RequestTimeoutMillis:   10000,
			SearchParam:            "term",
			Messages: Messages{
				TooShort: "Enter at least %d characters",
				NoMatch:  "No matches found.",
				Required: "Please select an item in the list.",
			},
		},
		UISettings: UISettings{
			Height:   10,
			ShowHelp: true,
			LogFile:  "jselect.log",
			Output:   "json",
		},
	}
}

// SelectionMode parses Mode
func (w Widget) SelectionMode() domain.Mode {
	m, _ := domain.ParseMode(w.Mode)
	return m
}

// Remote reports whether searches go to URL
func (w Widget) Remote() bool {
	return w.URL != ""
}

// Debounce returns the debounce delay
func (w Widget) Debounce() time.Duration {
	return time.Duration(w.DebounceMillis) * time.Millisecond
}

// RequestTimeout returns the HTTP request timeout
func (w Widget) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutMillis) * time.Millisecond
}

// CanClear reports whether the user may remove selected values
func (w Widget) CanClear() bool {
	return w.AllowClear && (w.SelectionMode() == domain.ModeMulti || w.Placeholder != "")
}

// TooShortMessage renders the too-short message for min
func (m Messages) TooShortMessage(min int) string {
	if strings.Contains(m.TooShort, "%d") {
		return fmt.Sprintf(m.TooShort, min)
	}
	return m.TooShort
}

// Validate checks the configuration for values the engine cannot work with
func (c *Config) Validate() error {
	if _, err := domain.ParseMode(c.Widget.Mode); err != nil {
		return fmt.Errorf("widget.mode: %w", err)
	}
	if c.Widget.MinRemoteSearchLength < 0 {
		return fmt.Errorf("widget.min_remote_search_length must be >= 0, got %d", c.Widget.MinRemoteSearchLength)
	}
	if c.Widget.DebounceMillis < 0 {
		return fmt.Errorf("widget.debounce_ms must be >= 0, got %d", c.Widget.DebounceMillis)
	}
	if c.Widget.RequestTimeoutMillis < 0 {
		return fmt.Errorf("widget.request_timeout_ms must be >= 0, got %d", c.Widget.RequestTimeoutMillis)
	}
	if c.Widget.Remote() {
		if !strings.HasPrefix(c.Widget.URL, "http://") && !strings.HasPrefix(c.Widget.URL, "https://") {
			return fmt.Errorf("widget.url must be an http(s) URL, got %q", c.Widget.URL)
		}
		if c.Widget.SearchParam == "" {
			return fmt.Errorf("widget.search_param is required when widget.url is set")
		}
	}
	if strings.Count(c.Widget.Messages.TooShort, "%") > 1 {
		return fmt.Errorf("widget.messages.too_short may contain at most one %%d verb")
	}
	if c.UISettings.Height < 1 {
		return fmt.Errorf("ui.height must be >= 1, got %d", c.UISettings.Height)
	}
	switch c.UISettings.Output {
	case "json", "form", "lines":
	default:
		return fmt.Errorf("ui.output must be one of json, form, lines; got %q", c.UISettings.Output)
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted at the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return &configService{
		filePath: filepath.Join(configDir, "jselect", "config.toml"),
	}
}

// Load loads the default config file, or the defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the default config file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path, layered over the defaults
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := Unmarshal(FormatOf(path), data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path in the format of its extension
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(FormatOf(path), config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Format is a config file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the encoding from a file extension, defaulting to TOML
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Unmarshal decodes data into cfg
func Unmarshal(f Format, data []byte, cfg *Config) error {
	switch f {
	case FormatYAML:
		return yaml.Unmarshal(data, cfg)
	case FormatJSON:
		return json.Unmarshal(data, cfg)
	default:
		return toml.Unmarshal(data, cfg)
	}
}

// Marshal encodes cfg
func Marshal(f Format, cfg *Config) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return toml.Marshal(cfg)
	}
}
