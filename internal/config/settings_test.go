package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/muurk/impromptu/internal/theme"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}
	if !strings.Contains(configDir, "impromptu") {
		t.Errorf("GetConfigDir() = %v, should contain 'impromptu'", configDir)
	}

	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		if got, _ := GetConfigDir(); got != filepath.Join("/tmp/xdg", "impromptu") {
			t.Errorf("GetConfigDir() with XDG_CONFIG_HOME = %v", got)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Setenv(ConfigEnvVar, "/etc/impromptu.yaml")
	if got, _ := GetConfigPath(); got != "/etc/impromptu.yaml" {
		t.Errorf("GetConfigPath() = %v, want the %s override", got, ConfigEnvVar)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("IMPROMPTU_OUTPUT_FORMAT", "")
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Output.Format != FormatTable {
		t.Errorf("Output.Format = %q, want %q", s.Output.Format, FormatTable)
	}
	if len(s.Theme) != 0 {
		t.Errorf("Theme = %v, want empty", s.Theme)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
log:
  level: debug
theme:
  linespace: 1
  icon:
    text: "(?)"
    fg: cyan
output:
  format: table
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("IMPROMPTU_OUTPUT_FORMAT", "json")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", s.Log.Level)
	}
	if s.Output.Format != FormatJSON {
		t.Errorf("Output.Format = %q, env should override the file", s.Output.Format)
	}

	settings, err := s.ThemeSettings()
	if err != nil {
		t.Fatalf("ThemeSettings() error = %v", err)
	}
	if len(settings) != 2 || settings[0].Key != theme.KeyIcon || settings[1].Key != theme.KeyLinespace {
		t.Errorf("ThemeSettings() = %+v", settings)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("IMPROMPTU_OUTPUT_FORMAT", "")
	tests := []struct {
		name string
		data string
	}{
		{"format", "output:\n  format: xml\n"},
		{"theme key", "theme:\n  colour: red\n"},
		{"theme value", "theme:\n  query: {fg: mauve}\n"},
		{"yaml", "log: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("IMPROMPTU_OUTPUT_FORMAT", "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	s := Default()
	s.Log.Level = "info"
	s.Output.Format = FormatJSON
	s.Theme["refresh"] = true
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# impromptu configuration file") {
		t.Error("saved file should start with the header comment")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Log.Level != "info" || loaded.Output.Format != FormatJSON {
		t.Errorf("Load() = %+v", loaded)
	}
	if loaded.Theme["refresh"] != true {
		t.Errorf("Theme[refresh] = %v, want true", loaded.Theme["refresh"])
	}
}
