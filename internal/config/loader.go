package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the user and local config directories.
const ConfigFile = "runner.yaml"

// Skipped describes a config file passed over during the search.
type Skipped struct {
	Path string
	Err  error
}

func (s Skipped) Error() string {
	return fmt.Sprintf("config %s skipped: %v", s.Path, s.Err)
}

func (s Skipped) Unwrap() error {
	return s.Err
}

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.neonrun/configs/runner.yaml -> ./configs/runner.yaml -> embedded default.
// Files are layered over the defaults, so a file may set only the keys it changes.
// An unreadable or invalid customPath is an error. Broken files elsewhere are
// passed over and returned as skipped; missing ones are not reported.
func LoadRunner(customPath string) (RunnerConfig, []Skipped, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RunnerConfig{}, nil, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil, nil
	}

	var skipped []Skipped
	candidates := []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Err: err})
			continue
		}
		cfg, err := Parse(data)
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Err: err})
			continue
		}
		return cfg, skipped, nil
	}

	cfg, err := Parse(defaultRunnerYAML)
	if err != nil {
		skipped = append(skipped, Skipped{Path: "embedded default", Err: err})
		return DefaultRunnerConfig(), skipped, nil
	}
	return cfg, skipped, nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg RunnerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".neonrun", "configs", filename)
}
