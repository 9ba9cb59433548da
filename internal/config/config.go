package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the omnisearch API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: determined by env)
	Format string `yaml:"format"` // json, console (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Standalone       bool     `yaml:"standalone"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix    string `yaml:"key_prefix"`
	EnsureSchema bool   `yaml:"ensure_schema"` // create missing search indexes on startup
}

// SearchConfig tunes retrieval and ranking.
type SearchConfig struct {
	DefaultPageSize    int     `yaml:"default_page_size"`
	MaxPageSize        int     `yaml:"max_page_size"`
	PerTypeLimit       int     `yaml:"per_type_limit"`
	Overfetch          int     `yaml:"overfetch"` // store rows fetched per candidate kept
	RetrieverTimeoutMs int     `yaml:"retriever_timeout_ms"`
	FuzzyThreshold     float64 `yaml:"fuzzy_threshold"`
	JaroWinklerWeight  float64 `yaml:"jaro_winkler_weight"`
	SoundexFloor       float64 `yaml:"soundex_floor"` // 0 disables phonetic name matching

	Scoring ScoringConfig `yaml:"scoring"`
	Breaker BreakerConfig `yaml:"breaker"`
}

// ScoringConfig holds relevance weights.
type ScoringConfig struct {
	ParentPrior      float64 `yaml:"parent_prior"`
	SitterPrior      float64 `yaml:"sitter_prior"`
	ProductPrior     float64 `yaml:"product_prior"`
	MaxBoost         float64 `yaml:"max_boost"`
	ReviewSaturation float64 `yaml:"review_saturation"`
	MutualSaturation float64 `yaml:"mutual_saturation"`
}

// BreakerConfig holds per-type circuit breaker settings.
type BreakerConfig struct {
	Disabled     bool    `yaml:"disabled"`
	MaxRequests  uint32  `yaml:"max_requests"`
	IntervalSec  int     `yaml:"interval_sec"`
	OpenSec      int     `yaml:"open_sec"`
	MinRequests  uint32  `yaml:"min_requests"`
	FailureRatio float64 `yaml:"failure_ratio"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expanding ${VAR} references, then applies defaults
// and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
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
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "omni:"
	}
	c.Search.applyDefaults()
}

func (s *SearchConfig) applyDefaults() {
	if s.DefaultPageSize <= 0 {
		s.DefaultPageSize = 20
	}
	if s.MaxPageSize <= 0 {
		s.MaxPageSize = 50
	}
	if s.PerTypeLimit <= 0 {
		s.PerTypeLimit = 50
	}
	if s.Overfetch <= 0 {
		s.Overfetch = 3
	}
	if s.RetrieverTimeoutMs <= 0 {
		s.RetrieverTimeoutMs = 2000
	}
	if s.FuzzyThreshold <= 0 {
		s.FuzzyThreshold = 0.3
	}
	if s.JaroWinklerWeight <= 0 {
		s.JaroWinklerWeight = 0.8
	}
	// SoundexFloor keeps an explicit 0.

	sc := &s.Scoring
	if sc.ParentPrior <= 0 {
		sc.ParentPrior = 1.0
	}
	if sc.SitterPrior <= 0 {
		sc.SitterPrior = 0.95
	}
	if sc.ProductPrior <= 0 {
		sc.ProductPrior = 0.9
	}
	if sc.MaxBoost <= 0 {
		sc.MaxBoost = 0.1
	}
	if sc.ReviewSaturation <= 0 {
		sc.ReviewSaturation = 20
	}
	if sc.MutualSaturation <= 0 {
		sc.MutualSaturation = 5
	}

	b := &s.Breaker
	if b.MaxRequests == 0 {
		b.MaxRequests = 1
	}
	if b.IntervalSec <= 0 {
		b.IntervalSec = 30
	}
	if b.OpenSec <= 0 {
		b.OpenSec = 10
	}
	if b.MinRequests == 0 {
		b.MinRequests = 5
	}
	if b.FailureRatio <= 0 {
		b.FailureRatio = 0.6
	}
}

// Validate checks the configuration for correctness. Scoring weights are
// validated again, against the ranking invariants, when the scorer is built.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if !strings.HasSuffix(c.Storage.KeyPrefix, ":") {
		return fmt.Errorf("storage.key_prefix must end with ':', got %q", c.Storage.KeyPrefix)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	s := c.Search
	if s.MaxPageSize > 50 {
		return fmt.Errorf("search.max_page_size must be at most 50, got %d", s.MaxPageSize)
	}
	if s.DefaultPageSize > s.MaxPageSize {
		return fmt.Errorf("search.default_page_size %d exceeds max_page_size %d", s.DefaultPageSize, s.MaxPageSize)
	}
	if s.FuzzyThreshold > 1 || s.JaroWinklerWeight > 1 || s.SoundexFloor < 0 || s.SoundexFloor > 1 {
		return fmt.Errorf("search similarity weights must be in [0, 1]")
	}
	if s.Breaker.FailureRatio > 1 {
		return fmt.Errorf("search.breaker.failure_ratio must be at most 1, got %v", s.Breaker.FailureRatio)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
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
