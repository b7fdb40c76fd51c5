// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/nutriplan/internal/llm"
	"github.com/jonathan/nutriplan/internal/progress"
	"github.com/jonathan/nutriplan/internal/store"
	"github.com/jonathan/nutriplan/internal/types"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or are provided via flags and environment.
type Config struct {
	// Generation
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`         // Gemini API key
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`             // Model override for the selected tier
	Tier        string  `json:"tier,omitempty" yaml:"tier,omitempty"`               // lite, standard or advanced
	Temperature float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"` // Sampling temperature
	Locale      string  `json:"locale,omitempty" yaml:"locale,omitempty"`           // en or es
	Progress    string  `json:"progress,omitempty" yaml:"progress,omitempty"`       // marker or path

	// Persistence
	StoreDriver   string `json:"store,omitempty" yaml:"store,omitempty"`                   // sqlite, postgres, redis or memory
	SQLitePath    string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`       // SQLite database file
	DatabaseURL   string `json:"database_url,omitempty" yaml:"database_url,omitempty"`     // PostgreSQL connection URL
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`         // Redis host:port
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"` // Redis password
	StoreKey      string `json:"store_key,omitempty" yaml:"store_key,omitempty"`           // Key of the saved plan

	// Export
	ChromePath string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"` // Chrome binary used for snapshots

	// Server
	Port      int     `json:"port,omitempty" yaml:"port,omitempty"`             // HTTP port
	RateLimit float64 `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"` // Generation requests per minute per client
	RateBurst int     `json:"rate_burst,omitempty" yaml:"rate_burst,omitempty"` // Burst allowance

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn, error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // console or json
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`       // Print detailed plan summaries
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Tier:        string(llm.TierStandard),
		Temperature: llm.DefaultTemperature,
		Locale:      string(types.DefaultLocale),
		Progress:    string(progress.StrategyMarker),
		StoreDriver: store.DriverSQLite,
		SQLitePath:  defaultSQLitePath(),
		StoreKey:    store.DefaultKey,
		Port:        8080,
		RateLimit:   6,
		RateBurst:   2,
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".nutriplan", "plans.db")
	}
	return filepath.Join(dir, "nutriplan", "plans.db")
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := decodeFile(path, "config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadProfile reads a user profile from a JSON or YAML file and validates it.
func LoadProfile(path string) (*types.UserProfile, error) {
	profile := types.DefaultProfile()
	if err := decodeFile(path, "profile", &profile); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile in %s: %w", path, err)
	}
	return &profile, nil
}

func decodeFile(path, kind string, out any) error {
	if path == "" {
		return fmt.Errorf("%s path is empty", kind)
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s file %s: %w", kind, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse %s YAML: %w", kind, err)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse %s JSON: %w", kind, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields with the environment variables that are set.
func (c *Config) ApplyEnv() {
	setString(&c.APIKey, "GEMINI_API_KEY")
	setString(&c.Model, "NUTRIPLAN_MODEL")
	setString(&c.Locale, "NUTRIPLAN_LOCALE")
	setString(&c.StoreDriver, "NUTRIPLAN_STORE")
	setString(&c.SQLitePath, "NUTRIPLAN_SQLITE_PATH")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisPassword, "REDIS_PASSWORD")
	setString(&c.ChromePath, "CHROME_PATH")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

func setString(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for the API key since only generation needs it.
func (c *Config) Validate() error {
	if c.Locale != "" {
		if _, err := types.ParseLocale(c.Locale); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if _, err := llm.ParseTier(c.Tier); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	switch progress.Strategy(c.Progress) {
	case "", progress.StrategyMarker, progress.StrategyPath:
	default:
		return fmt.Errorf("config error: unknown progress strategy %q", c.Progress)
	}
	switch c.StoreDriver {
	case "", store.DriverSQLite, store.DriverMemory:
	case store.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	case store.DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for the redis store")
		}
	default:
		return fmt.Errorf("config error: unknown store %q", c.StoreDriver)
	}

	// Validate numeric ranges
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("config error: rate limits must be non-negative")
	}

	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be console or json")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.Tier, defaults.Tier)
	mergeString(&result.Locale, defaults.Locale)
	mergeString(&result.Progress, defaults.Progress)
	mergeString(&result.StoreDriver, defaults.StoreDriver)
	mergeString(&result.SQLitePath, defaults.SQLitePath)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.RedisAddr, defaults.RedisAddr)
	mergeString(&result.RedisPassword, defaults.RedisPassword)
	mergeString(&result.StoreKey, defaults.StoreKey)
	mergeString(&result.ChromePath, defaults.ChromePath)
	mergeString(&result.LogLevel, defaults.LogLevel)
	mergeString(&result.LogFormat, defaults.LogFormat)

	// Numeric fields: use default if zero
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}
	if result.RateBurst == 0 {
		result.RateBurst = defaults.RateBurst
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

// LocaleValue returns the parsed locale, falling back to the default.
func (c *Config) LocaleValue() types.Locale {
	locale, err := types.ParseLocale(c.Locale)
	if err != nil {
		return types.DefaultLocale
	}
	return locale
}

// TierValue returns the parsed model tier, falling back to the standard tier.
func (c *Config) TierValue() llm.ModelTier {
	tier, err := llm.ParseTier(c.Tier)
	if err != nil {
		return llm.TierStandard
	}
	return tier
}

// ModelConfig returns the model table with the configured override applied.
func (c *Config) ModelConfig() *llm.Config {
	models := llm.DefaultConfig()
	if c.Model != "" {
		models = models.WithModel(c.TierValue(), c.Model)
	}
	return models
}

// StoreConfig returns the persistence settings.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Driver:        c.StoreDriver,
		SQLitePath:    c.SQLitePath,
		DatabaseURL:   c.DatabaseURL,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		Key:           c.StoreKey,
	}
}
