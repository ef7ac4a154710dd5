package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/muurk/impromptu/internal/theme"
)

// Output formats for form results
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Formats lists every output format
var Formats = []string{FormatTable, FormatJSON}

// fileMutex serializes writes to the configuration file
var fileMutex sync.Mutex

// Settings represents the user configuration file
type Settings struct {
	Log    LogSettings    `mapstructure:"log" yaml:"log"`
	Theme  map[string]any `mapstructure:"theme" yaml:"theme,omitempty"` // Default field settings, see theme.ParseSettings
	Output OutputSettings `mapstructure:"output" yaml:"output"`
}

// LogSettings controls the debug log. Logging is off unless a level is set.
type LogSettings struct {
	Level string `mapstructure:"level" yaml:"level,omitempty"` // debug, info, warn or error
	File  string `mapstructure:"file" yaml:"file,omitempty"`   // Defaults to <tmp>/impromptu.log
}

// OutputSettings controls how results are printed once a form finishes
type OutputSettings struct {
	Format string `mapstructure:"format" yaml:"format"` // table or json
}

// Default returns the settings used when no file exists
func Default() *Settings {
	return &Settings{
		Theme:  map[string]any{},
		Output: OutputSettings{Format: FormatTable},
	}
}

// Load reads settings from path, or from GetConfigPath when path is empty.
// A missing file yields the defaults. Env vars with prefix IMPROMPTU_
// override file values (IMPROMPTU_LOG_LEVEL, IMPROMPTU_OUTPUT_FORMAT).
func Load(path string) (*Settings, error) {
	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	v := viper.New()
	def := Default()
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("theme", def.Theme)

	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("IMPROMPTU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if s.Theme == nil {
		s.Theme = map[string]any{}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the output format and theme settings
func (s *Settings) Validate() error {
	if !slices.Contains(Formats, s.Output.Format) {
		return fmt.Errorf("output format must be one of %s, got %q", strings.Join(Formats, ", "), s.Output.Format)
	}
	if _, err := s.ThemeSettings(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// ThemeSettings parses the theme section into field settings
func (s *Settings) ThemeSettings() ([]theme.Setting, error) {
	return theme.ParseSettings(s.Theme)
}

// Save writes the settings to path, or to GetConfigPath when path is empty.
// Performs an atomic write to prevent corruption on crash.
func (s *Settings) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# impromptu configuration file
#
# theme holds default field settings applied to every question, for example:
#   theme:
#     icon: {text: "(?)", fg: cyan}
#     linespace: 1
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}
	return nil
}
