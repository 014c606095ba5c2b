// Package config loads the conformance run configuration. Settings come from
// an optional YAML file, either passed explicitly or found at the default
// user config path; command line flags override file settings in the cmd
// layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"scimtester/internal/check"
	"scimtester/pkg/logging"
)

const (
	userConfigDir  = ".config/scimtester"
	configFileName = "config.yaml"
)

// Config is the full run configuration: check selection plus output settings.
type Config struct {
	Check check.Config `yaml:"checks"`

	// Host is the SCIM server base URL. A positional argument overrides it.
	Host string `yaml:"host,omitempty"`
	// Token is the bearer token used to authenticate against the server.
	Token string `yaml:"token,omitempty"`
	// Output selects the report format: table, json or yaml.
	Output string `yaml:"output,omitempty"`
	// Verbose adds check descriptions to table output.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{Output: "table"}
}

// DefaultPath returns the per-user config file location, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, userConfigDir, configFileName)
}

// Load reads the configuration file at path. An empty path falls back to the
// default user location; a missing file yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	config := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No config file at %s, using defaults", path)
			return config, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	logging.Debug("Config", "Loaded configuration from %s", path)
	return config, nil
}
