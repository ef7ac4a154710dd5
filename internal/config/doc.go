// Package config provides user configuration management for impromptu.
//
// Settings are read with viper from a YAML file and overridden by
// environment variables prefixed with IMPROMPTU_. The file follows
// OS-specific conventions for its location unless IMPROMPTU_CONFIG is set:
//   - Linux: $XDG_CONFIG_HOME/impromptu/config.yaml or $HOME/.config/impromptu/config.yaml
//   - macOS: $HOME/.config/impromptu/config.yaml
//   - Windows: %LOCALAPPDATA%\impromptu\config.yaml
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	defaults, err := settings.ThemeSettings()
//	if err != nil {
//	    return err
//	}
//	fm, err := form.New(def, defaults...)
//
// A missing file is not an error; Default is used instead.
package config
