package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the user and local config dirs.
const ConfigFileName = "runner.yaml"

// SourceEmbedded is the Loaded.Source of the built-in defaults.
const SourceEmbedded = "embedded"

// Loaded is a resolved configuration and where it came from.
type Loaded struct {
	Config RunnerConfig
	Source string // File path, or SourceEmbedded

	// Skipped holds one error per search layer that exists but could not be
	// parsed or validated. Missing files are not reported.
	Skipped []error
}

// LoadRunner loads the runner configuration. See Load for the search order.
func LoadRunner(customPath string) (RunnerConfig, error) {
	l, err := Load(customPath)
	return l.Config, err
}

// Load resolves the runner configuration.
// Search order: customPath -> ~/.runner/configs/runner.yaml ->
// ./configs/runner.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so partial files only override
// the keys they mention. A custom path that cannot be read, parsed or
// validated is an error; the other layers fall through and are recorded in
// Skipped.
func Load(customPath string) (Loaded, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Loaded{Config: cfg, Source: customPath}, err
		}
		if err := cfg.Validate(); err != nil {
			return Loaded{Config: cfg, Source: customPath}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return Loaded{Config: cfg, Source: customPath}, nil
	}

	var skipped []error
	candidates := []string{userConfigPath(ConfigFileName), filepath.Join("configs", ConfigFileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg, err := loadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err == nil {
			err = cfg.Validate()
			if err == nil {
				return Loaded{Config: cfg, Source: path, Skipped: skipped}, nil
			}
			err = fmt.Errorf("config %s: %w", path, err)
		}
		skipped = append(skipped, err)
	}

	return Loaded{Config: embeddedDefault(), Source: SourceEmbedded, Skipped: skipped}, nil
}

// Decode parses YAML on top of the default configuration.
func Decode(data []byte) (RunnerConfig, error) {
	cfg := embeddedDefault()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Encode renders a configuration as YAML.
func Encode(cfg RunnerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

func loadFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return embeddedDefault(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// embeddedDefault decodes the embedded YAML, falling back to the hardcoded
// values if the embed is unusable.
func embeddedDefault() RunnerConfig {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig()
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "configs", filename)
}
