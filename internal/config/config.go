package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. POSEDASH_PATHS_MODEL_ROOT.
const envPrefix = "POSEDASH"

// Config represents the complete application configuration
type Config struct {
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Cache     CacheConfig     `yaml:"cache" envconfig:"CACHE"`
	Dashboard DashboardConfig `yaml:"dashboard" envconfig:"DASHBOARD"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	// ModelRoot is the directory holding model output folders,
	// nested exactly two levels deep.
	ModelRoot string `yaml:"model_root" envconfig:"MODEL_ROOT"`
	// VideoPredsDir is the per-model subdirectory holding video metric files.
	VideoPredsDir string `yaml:"video_preds_dir" envconfig:"VIDEO_PREDS_DIR"`
	// ExportDir receives exported comparison tables.
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=console file"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// CacheConfig controls the memoization store handed to compute functions.
type CacheConfig struct {
	// TTL bounds how long a memoized table is served before the
	// underlying files are re-read. Zero selects the default.
	TTL time.Duration `yaml:"ttl" envconfig:"TTL"`
	// NoExpiry keeps memoized tables until explicitly invalidated,
	// overriding TTL.
	NoExpiry bool `yaml:"no_expiry" envconfig:"NO_EXPIRY"`
}

// StoreTTL resolves the expiry handed to the cache store, where zero
// means no expiry.
func (c CacheConfig) StoreTTL() time.Duration {
	if c.NoExpiry {
		return 0
	}
	return c.TTL
}

// DashboardConfig holds defaults the dashboard applies when the user has
// not made a selection yet.
type DashboardConfig struct {
	// UseOOD selects out-of-distribution prediction files ("new" marker).
	UseOOD bool `yaml:"use_ood" envconfig:"USE_OOD"`
}

// Load loads configuration from an optional YAML file and environment
// variables. Environment variables take precedence over file values;
// defaults fill whatever remains unset.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Paths.VideoPredsDir == "" {
		c.Paths.VideoPredsDir = "video_preds"
	}
	if c.Paths.ExportDir == "" {
		c.Paths.ExportDir = "exports"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/posedash.log"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative: %s", c.Cache.TTL)
	}

	return nil
}
