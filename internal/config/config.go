package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the packgen pipeline configuration.
type Config struct {
	Guards   GuardsConfig   `yaml:"guards"`
	Banks    BanksConfig    `yaml:"banks"`
	Matching MatchingConfig `yaml:"matching"`
	IO       IOConfig       `yaml:"io"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// GuardsConfig holds safety-guard settings.
type GuardsConfig struct {
	SFWLevel        string `yaml:"sfw_level"` // off, default, strict (default: default)
	DropProperNouns bool   `yaml:"drop_proper_nouns"`
	AcronymMinLen   int    `yaml:"acronym_min_len"`

	// Optional override files, one pattern per line, # comments.
	BlockListPath     string `yaml:"block_list_path"`
	AllowListPath     string `yaml:"allow_list_path"`
	ProperContextPath string `yaml:"proper_context_path"`
	NationalityPath   string `yaml:"nationality_path"`
}

// BanksConfig holds distractor-bank settings.
type BanksConfig struct {
	// MinSize maps CEFR level to the minimum bank size. Missing levels
	// fall back to the built-in level minimums.
	MinSize map[string]int `yaml:"min_size"`
	MaxSize int            `yaml:"max_size"`

	// Cooldown caps how often a single distractor surface may be reused
	// within one generated pack.
	Cooldown int `yaml:"cooldown"`

	// MCQCombinations bounds the distractor-triple search per MCQ item.
	MCQCombinations int `yaml:"mcq_combinations"`
}

// MatchingConfig holds matching-set settings.
type MatchingConfig struct {
	SetSize     int `yaml:"set_size"`      // 2..12 (default: 6)
	MinEmitSize int `yaml:"min_emit_size"` // trailing sets below this are logged (default: 2)
}

// IOConfig holds input/output settings.
type IOConfig struct {
	BlankMarker string `yaml:"blank_marker"` // default: "_____"
}

// MetricsConfig holds the optional metrics listener settings.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the listener
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A missing config file is not an error: the pipeline runs on defaults.
func Load(env string) (Config, error) {
	var cfg Config

	configPath := filepath.Join("config", fmt.Sprintf("%s.yaml", env))
	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	default:
		// Substitute env variables of the form ${VAR} / ${VAR:-default}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Guards.SFWLevel == "" {
		c.Guards.SFWLevel = "default"
	}
	if c.Guards.AcronymMinLen <= 0 {
		c.Guards.AcronymMinLen = 3
	}
	if c.Banks.MaxSize <= 0 {
		c.Banks.MaxSize = 8
	}
	if c.Banks.Cooldown <= 0 {
		c.Banks.Cooldown = 20
	}
	if c.Banks.MCQCombinations <= 0 {
		c.Banks.MCQCombinations = 12
	}
	if c.Matching.SetSize <= 0 {
		c.Matching.SetSize = 6
	}
	if c.Matching.MinEmitSize <= 0 {
		c.Matching.MinEmitSize = 2
	}
	if c.IO.BlankMarker == "" {
		c.IO.BlankMarker = "_____"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Guards.SFWLevel {
	case "off", "default", "strict":
		// ok
	default:
		return fmt.Errorf("guards.sfw_level must be \"off\", \"default\" or \"strict\", got %q", c.Guards.SFWLevel)
	}
	if c.Matching.SetSize < 2 || c.Matching.SetSize > 12 {
		return fmt.Errorf("matching.set_size must be between 2 and 12, got %d", c.Matching.SetSize)
	}
	for level, minSize := range c.Banks.MinSize {
		if minSize <= 0 {
			return fmt.Errorf("banks.min_size.%s must be positive, got %d", level, minSize)
		}
		if minSize > c.Banks.MaxSize {
			return fmt.Errorf("banks.min_size.%s (%d) exceeds banks.max_size (%d)", level, minSize, c.Banks.MaxSize)
		}
	}
	if strings.Contains(c.IO.BlankMarker, "|") {
		return fmt.Errorf("io.blank_marker must not contain the bank separator %q", "|")
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
