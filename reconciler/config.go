package reconciler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const defaultConfigFile = "config.yaml"

// LogConfig holds logger settings persisted with the configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Config aggregates runtime settings persisted to config.yaml.
type Config struct {
	KeyColumnTokens []string  `yaml:"keyColumnTokens"`
	TextColumn      string    `yaml:"textColumn"`
	DictionaryPath  string    `yaml:"dictionaryPath"`
	OutputDir       string    `yaml:"outputDir"`
	SheetName       string    `yaml:"sheetName"`
	Log             LogConfig `yaml:"log"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	out := c
	out.KeyColumnTokens = cloneStrings(c.KeyColumnTokens)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.KeyColumnTokens == nil {
		c.KeyColumnTokens = defaultKeyColumnTokens()
	}
	if c.TextColumn == "" {
		c.TextColumn = DefaultTextColumn
	}
	if c.DictionaryPath == "" {
		c.DictionaryPath = "config/responsaveis.yaml"
	}
	if c.OutputDir == "" {
		c.OutputDir = "saida"
	}
	if c.SheetName == "" {
		c.SheetName = DefaultSheetName
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stderr"
	}
}

// LoadConfig loads configuration from the given path or the default
// config.yaml. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// EnsureConfigFile writes cfg to path, or config.yaml when path is empty, if
// no file exists there yet. It reports whether a file was created.
func EnsureConfigFile(path string, cfg Config) (bool, error) {
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := SaveConfig(path, cfg); err != nil {
		return false, err
	}
	return true, nil
}
