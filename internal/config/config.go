package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/argo/internal/formatter"
	"github.com/mcncl/argo/internal/parser"
)

// Config represents the complete configuration for argo
type Config struct {
	Parser ParserConfig `yaml:"parser" toml:"parser"`
	Output OutputConfig `yaml:"output" toml:"output"`
	Dev    DevConfig    `yaml:"dev" toml:"dev"`
}

// ParserConfig controls parsing limits and strictness
type ParserConfig struct {
	MaxDepth       int  `yaml:"max_depth" toml:"max_depth"`
	MaxStringBytes int  `yaml:"max_string_bytes" toml:"max_string_bytes"`
	MaxPairs       int  `yaml:"max_pairs" toml:"max_pairs"`
	AllowTrailing  bool `yaml:"allow_trailing" toml:"allow_trailing"`
}

// OutputConfig controls how parsed values are rendered
type OutputConfig struct {
	KeyCase string `yaml:"key_case" toml:"key_case"`
	Stats   bool   `yaml:"stats" toml:"stats"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug" toml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxDepth:      parser.DefaultMaxDepth,
			AllowTrailing: false,
		},
		Output: OutputConfig{
			KeyCase: string(formatter.KeyCaseNone),
		},
	}
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by extension
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFileFrom(currentDir)
}

func findConfigFileFrom(dir string) string {
	configNames := []string{".argo.yml", ".argo.yaml", "argo.yml", "argo.yaml", ".argo.toml", "argo.toml"}

	currentDir := dir
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks limits and names in the config
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if c.Parser.MaxStringBytes < 0 {
		return fmt.Errorf("parser.max_string_bytes must not be negative, got %d", c.Parser.MaxStringBytes)
	}
	if c.Parser.MaxPairs < 0 {
		return fmt.Errorf("parser.max_pairs must not be negative, got %d", c.Parser.MaxPairs)
	}
	if _, err := formatter.ParseKeyCase(c.Output.KeyCase); err != nil {
		return fmt.Errorf("output.key_case: %w", err)
	}
	return nil
}

// ParserOptions converts the parser section into parser.Options
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		MaxDepth:       c.Parser.MaxDepth,
		MaxStringBytes: c.Parser.MaxStringBytes,
		MaxPairs:       c.Parser.MaxPairs,
		AllowTrailing:  c.Parser.AllowTrailing,
	}
}

// KeyCase returns the validated output key case
func (c *Config) KeyCase() formatter.KeyCase {
	kc, err := formatter.ParseKeyCase(c.Output.KeyCase)
	if err != nil {
		return formatter.KeyCaseNone
	}
	return kc
}

// CLIOverrides holds flag values; nil fields were not given on the command line
type CLIOverrides struct {
	MaxDepth      *int
	AllowTrailing *bool
	KeyCase       *string
	Stats         *bool
	Debug         *bool
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// An empty configPath falls back to FindConfigFile.
func LoadConfigWithCLI(configPath string, overrides CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if overrides.MaxDepth != nil {
		cfg.Parser.MaxDepth = *overrides.MaxDepth
	}
	if overrides.AllowTrailing != nil {
		cfg.Parser.AllowTrailing = *overrides.AllowTrailing
	}
	if overrides.KeyCase != nil {
		cfg.Output.KeyCase = *overrides.KeyCase
	}
	if overrides.Stats != nil {
		cfg.Output.Stats = *overrides.Stats
	}
	if overrides.Debug != nil {
		cfg.Dev.Debug = *overrides.Debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
