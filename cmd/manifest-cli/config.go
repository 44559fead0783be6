package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// Config is the optional YAML file passed with --config. Flags set on the
// command line override it.
type Config struct {
	Output   string       `yaml:"output"`
	Sanitize bool         `yaml:"sanitize"`
	Loader   LoaderConfig `yaml:"loader"`
}

// LoaderConfig controls how manifests and values are fetched.
type LoaderConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	AllowHTTP bool          `yaml:"allow_http"`
}

func defaultConfig() Config {
	return Config{
		Output:   outputText,
		Sanitize: true,
		Loader: LoaderConfig{
			Timeout:   10 * time.Second,
			AllowHTTP: true,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Output {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("config: unsupported output %q (want %s or %s)", c.Output, outputText, outputJSON)
	}
	if c.Loader.Timeout < 0 {
		return fmt.Errorf("config: loader timeout must not be negative")
	}
	return nil
}
