// Package config loads the regctl configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/regpath/internal/logger"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "REGCTL_CONFIG"

// Backend selects the registry store the CLI operates on.
type Backend string

const (
	BackendNative Backend = "native"
	BackendMemory Backend = "memory"
	BackendBolt   Backend = "bolt"
)

// Config is the decoded configuration file.
type Config struct {
	Backend  Backend `yaml:"backend"`
	Database string  `yaml:"database"`
	Remote   string  `yaml:"remote"`
	Log      Log     `yaml:"log"`
}

// Log configures the process logger.
type Log struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
	Level   string `yaml:"level"`
	JSON    bool   `yaml:"json"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Backend: BackendNative,
		Log:     Log{Level: "info"},
	}
}

// Path returns the config file to read: explicit when non-empty, then
// $REGCTL_CONFIG, then regctl/config.yaml under the user config directory.
func Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(dir, "regctl", "config.yaml"), nil
}

// Load reads the file Path selects. A missing file yields the defaults
// unless it was named explicitly.
func Load(explicit string) (*Config, error) {
	path, err := Path(explicit)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && explicit == "" {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// A file holding only comments decodes as io.EOF.
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field combinations.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendNative, BackendMemory:
	case BackendBolt:
		if c.Database == "" {
			return errors.New("bolt backend needs a database path")
		}
	default:
		return fmt.Errorf("unknown backend %q (want native, memory or bolt)", c.Backend)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LoggerOptions converts the log section for logger.Init.
func (c *Config) LoggerOptions() (logger.Options, error) {
	lvl, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Options{}, err
	}
	return logger.Options{
		Enabled: c.Log.Enabled,
		File:    c.Log.File,
		Level:   lvl,
		JSON:    c.Log.JSON,
	}, nil
}
