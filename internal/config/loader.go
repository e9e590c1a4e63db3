package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"puppetwash/pkg/logging"

	"gopkg.in/yaml.v3"
)

// osUserHomeDir is swapped out in tests.
var osUserHomeDir = os.UserHomeDir

// DefaultConfigPath returns the configuration file path used when none is given.
// PUPPETWASH_CONFIG takes precedence over ~/.config/puppetwash/config.yaml.
func DefaultConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// LoadConfig loads the instance mapping from a YAML file.
// An empty path selects DefaultConfigPath. A missing file yields an empty configuration.
func LoadConfig(configPath string) (Config, error) {
	if configPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No configuration found at %s, no instances configured", configPath)
			return Config{}, nil
		}
		return nil, fmt.Errorf("error reading config from %s: %w", configPath, err)
	}

	cfg := Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error loading config from %s: %w", configPath, err)
	}

	cfg = finalize(cfg)
	logging.Debug("Config", "Loaded %d instances from %s", len(cfg), configPath)
	return cfg, nil
}

// ParseJSON decodes the instance mapping handed over by the host runtime.
func ParseJSON(data []byte) (Config, error) {
	cfg := Config{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return finalize(cfg), nil
}

// finalize expands file paths and logs validation problems.
func finalize(cfg Config) Config {
	out := make(Config, len(cfg))
	for name, ic := range cfg {
		ic.CACert = expandHome(ic.CACert)
		ic.Key = expandHome(ic.Key)
		ic.Cert = expandHome(ic.Cert)
		out[name] = ic
	}
	for _, name := range out.Names() {
		if errs := out[name].Validate(); errs.HasErrors() {
			logging.Warn("Config", "Instance %s: %s", name, errs.Error())
		}
	}
	return out
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	homeDir, err := osUserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(homeDir, p[2:])
}
