package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"drawcast/domain/candidate"
	"drawcast/internal/errors"
)

// Config represents the complete application configuration. It is built
// once at startup and treated as immutable by everything downstream.
type Config struct {
	Prediction PredictionConfig
	Source     SourceConfig
	Refine     RefineConfig
	Server     ServerConfig
}

// PredictionConfig holds the fixed constants of the scoring computation.
type PredictionConfig struct {
	TargetDate time.Time
	Gaps       candidate.Gaps
	MainMax    int
	StarMax    int
	Weekdays   []time.Weekday
}

// SourceConfig selects where the historical draws come from.
type SourceConfig struct {
	DataFile    string // CSV or XLSX path
	DatabaseURL string // Postgres, takes precedence when set
}

// RefineConfig holds the optional LLM refinement hook settings.
type RefineConfig struct {
	Enabled     bool
	OpenAIKey   string
	OpenAIModel string
	BaseURL     string
	Timeout     time.Duration
}

// ServerConfig holds the serve surface settings.
type ServerConfig struct {
	Addr string
}

// Defaults matching the reference configuration.
const (
	defaultTargetDate = "2026-02-03"
	defaultDataFile   = "data/draws.csv"
	defaultMainMax    = 50
	defaultStarMax    = 12
)

var defaultGaps = candidate.Gaps{5, 2, 11, 10}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	prediction, err := loadPredictionConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load prediction configuration")
	}

	config := &Config{
		Prediction: *prediction,
		Source: SourceConfig{
			DataFile:    getEnvOrDefault("DATA_FILE", defaultDataFile),
			DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Refine: RefineConfig{
			Enabled:     getEnvBoolOrDefault("USE_REFINEMENT", false),
			OpenAIKey:   getEnvOrDefault("OPENAI_API_KEY", ""),
			OpenAIModel: getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", ""),
			Timeout:     time.Duration(getEnvIntOrDefault("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Server: ServerConfig{
			Addr: getEnvOrDefault("SERVE_ADDR", ":8080"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadPredictionConfig() (*PredictionConfig, error) {
	dateStr := getEnvOrDefault("TARGET_DATE", defaultTargetDate)
	target, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, errors.ConfigInvalid("TARGET_DATE must be YYYY-MM-DD")
	}

	return &PredictionConfig{
		TargetDate: target,
		Gaps: candidate.Gaps{
			getEnvIntOrDefault("DIST_P1_P2", defaultGaps[0]),
			getEnvIntOrDefault("DIST_P2_P3", defaultGaps[1]),
			getEnvIntOrDefault("DIST_P3_P4", defaultGaps[2]),
			getEnvIntOrDefault("DIST_P4_P5", defaultGaps[3]),
		},
		MainMax:  getEnvIntOrDefault("MAIN_MAX", defaultMainMax),
		StarMax:  getEnvIntOrDefault("STAR_MAX", defaultStarMax),
		Weekdays: []time.Weekday{time.Tuesday, time.Friday},
	}, nil
}

// fileConfig is the YAML shape accepted by ApplyFile. Only the fields a
// deployment actually wants to pin need to be present.
type fileConfig struct {
	TargetDate string `yaml:"target_date"`
	Gaps       []int  `yaml:"gaps"`
	MainMax    int    `yaml:"main_max"`
	StarMax    int    `yaml:"star_max"`
	DataFile   string `yaml:"data_file"`
	Refine     *bool  `yaml:"refine"`
}

// ApplyFile overlays settings from a YAML file onto the loaded config.
func (c *Config) ApplyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if fc.TargetDate != "" {
		target, err := time.Parse("2006-01-02", fc.TargetDate)
		if err != nil {
			return errors.ConfigInvalid("target_date must be YYYY-MM-DD")
		}
		c.Prediction.TargetDate = target
	}
	if fc.Gaps != nil {
		if len(fc.Gaps) != len(c.Prediction.Gaps) {
			return errors.ConfigInvalid("gaps must list exactly four distances")
		}
		copy(c.Prediction.Gaps[:], fc.Gaps)
	}
	if fc.MainMax != 0 {
		c.Prediction.MainMax = fc.MainMax
	}
	if fc.StarMax != 0 {
		c.Prediction.StarMax = fc.StarMax
	}
	if fc.DataFile != "" {
		c.Source.DataFile = fc.DataFile
	}
	if fc.Refine != nil {
		c.Refine.Enabled = *fc.Refine
	}

	return c.Validate()
}

// Validate checks that the configuration can produce at least one
// candidate in each sub-problem and that enabled features are complete.
func (c *Config) Validate() error {
	if err := c.Prediction.Gaps.Validate(); err != nil {
		return errors.ConfigInvalid("all four distances must be positive")
	}
	if c.Prediction.MainMax-c.Prediction.Gaps.Span() < 1 {
		return errors.ConfigInvalid("main range too narrow for configured distances")
	}
	if c.Prediction.StarMax < 2 {
		return errors.ConfigInvalid("star range must allow at least one pair")
	}
	if c.Source.DataFile == "" && c.Source.DatabaseURL == "" {
		return errors.ConfigInvalid("either DATA_FILE or DATABASE_URL is required")
	}
	if c.Refine.Enabled && c.Refine.OpenAIKey == "" {
		return errors.ConfigInvalid("OPENAI_API_KEY is required when refinement is enabled")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
