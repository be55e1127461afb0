// Package config loads, validates and persists the carbontrack configuration
// stored at $CARBONTRACK_HOME/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/rshade/carbontrack/internal/logging"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Unit systems.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// Defaults.
const (
	DefaultPrecision         = 2
	DefaultLogLevel          = "info"
	DefaultMonthlyGoal       = 500.0
	DefaultYearlyGoal        = 6000.0
	DefaultAverageWindowDays = 30
	DefaultTrendMonths       = 12
	DefaultRecentEntries     = 5

	configFileName = "config.yaml"
	outputTypeFile = "file"
	maxPrecision   = 6
	maxWindowDays  = 365
	maxTrendMonths = 60
	maxRecent      = 50
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("output format must be 'table', 'json' or 'ndjson'")
	ErrInvalidPrecision    = errors.New("precision must be between 0 and 6")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("log format must be 'console' or 'json'")
	ErrInvalidBackend      = errors.New("storage backend must be 'json' or 'sqlite'")
	ErrInvalidUnits        = errors.New("units must be 'metric' or 'imperial'")
	ErrNegativeGoal        = errors.New("goal cannot be negative")
	ErrOutOfRange          = errors.New("value out of range")
)

// Config is the full carbontrack configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"    json:"output"`
	Logging   LoggingConfig   `yaml:"logging"   json:"logging"`
	Storage   StorageConfig   `yaml:"storage"   json:"storage"`
	Profile   ProfileConfig   `yaml:"profile"   json:"profile"`
	Dashboard DashboardConfig `yaml:"dashboard" json:"dashboard"`
	Budget    BudgetConfig    `yaml:"budget"    json:"budget"`

	configPath string
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
}

// LoggingConfig controls the application and audit logs.
type LoggingConfig struct {
	Level  string      `yaml:"level"            json:"level"`
	Format string      `yaml:"format"           json:"format"`
	File   string      `yaml:"file,omitempty"   json:"file,omitempty"`
	Audit  AuditConfig `yaml:"audit,omitempty"  json:"audit,omitempty"`
}

// AuditConfig controls the ledger audit log.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"        json:"enabled"`
	File    string `yaml:"file,omitempty" json:"file,omitempty"`
}

// StorageConfig selects the ledger backend. An empty Path resolves to a
// file under the config directory.
type StorageConfig struct {
	Backend string `yaml:"backend"        json:"backend"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty"`
}

// ProfileConfig describes the user and their carbon budgets in kg CO2e.
type ProfileConfig struct {
	Name        string  `yaml:"name,omitempty"     json:"name,omitempty"`
	Location    string  `yaml:"location,omitempty" json:"location,omitempty"`
	MonthlyGoal float64 `yaml:"monthly_goal"       json:"monthly_goal"`
	YearlyGoal  float64 `yaml:"yearly_goal"        json:"yearly_goal"`
	Units       string  `yaml:"units"              json:"units"`
}

// DashboardConfig tunes the dashboard calculations.
type DashboardConfig struct {
	AverageWindowDays int `yaml:"average_window_days" json:"average_window_days"`
	TrendMonths       int `yaml:"trend_months"        json:"trend_months"`
	RecentEntries     int `yaml:"recent_entries"      json:"recent_entries"`
}

// defaults returns a Config holding every default value.
func defaults() *Config {
	return &Config{
		Output:  OutputConfig{DefaultFormat: FormatTable, Precision: DefaultPrecision},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: logging.FormatConsole},
		Storage: StorageConfig{Backend: BackendJSON},
		Profile: ProfileConfig{
			MonthlyGoal: DefaultMonthlyGoal,
			YearlyGoal:  DefaultYearlyGoal,
			Units:       UnitsMetric,
		},
		Dashboard: DashboardConfig{
			AverageWindowDays: DefaultAverageWindowDays,
			TrendMonths:       DefaultTrendMonths,
			RecentEntries:     DefaultRecentEntries,
		},
	}
}

// Default returns a Config holding only default values, with no file or
// environment applied.
func Default() *Config {
	return defaults()
}

// New returns the configuration for the current environment: defaults,
// overlaid by config.yaml when present, then by .env and environment
// variables. Load errors leave the defaults in place.
func New() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		cfg := defaults()
		ApplyEnvOverrides(cfg)
		return cfg
	}

	cfg, err := Load(filepath.Join(dir, configFileName))
	if err != nil {
		cfg = defaults()
		cfg.configPath = filepath.Join(dir, configFileName)
	}
	_ = LoadDotEnv(dir)
	ApplyEnvOverrides(cfg)
	return cfg
}

// Load reads the file at path over the defaults. A missing file is not an
// error; the returned Config remembers path for Save.
func Load(path string) (*Config, error) {
	cfg := defaults()
	cfg.configPath = path

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("checking config file %s: %w", path, err)
	}
	if err := ShallowMergeYAML(cfg, path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultConfigPath returns config.yaml in the configuration directory.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// ConfigPath returns the file Save writes to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating its directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return err
		}
		c.configPath = filepath.Join(dir, configFileName)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks enumerations and ranges of every section.
func (c *Config) Validate() error {
	if !slices.Contains([]string{FormatTable, FormatJSON, FormatNDJSON}, c.Output.DefaultFormat) {
		return fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: got %d", ErrInvalidPrecision, c.Output.Precision)
	}
	if !slices.Contains([]string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"},
		c.Logging.Level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	if c.Logging.Format != logging.FormatConsole && c.Logging.Format != logging.FormatJSON {
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendSQLite {
		return fmt.Errorf("%w: got %q", ErrInvalidBackend, c.Storage.Backend)
	}
	if c.Profile.Units != UnitsMetric && c.Profile.Units != UnitsImperial {
		return fmt.Errorf("%w: got %q", ErrInvalidUnits, c.Profile.Units)
	}
	if c.Profile.MonthlyGoal < 0 || c.Profile.YearlyGoal < 0 {
		return ErrNegativeGoal
	}
	if err := checkRange("dashboard.average_window_days", c.Dashboard.AverageWindowDays, 1, maxWindowDays); err != nil {
		return err
	}
	if err := checkRange("dashboard.trend_months", c.Dashboard.TrendMonths, 1, maxTrendMonths); err != nil {
		return err
	}
	if err := checkRange("dashboard.recent_entries", c.Dashboard.RecentEntries, 1, maxRecent); err != nil {
		return err
	}
	if err := c.Budget.Validate(); err != nil {
		return fmt.Errorf("budget: %w", err)
	}
	return nil
}

func checkRange(key string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrOutOfRange, key, lo, hi, v)
	}
	return nil
}

// StoragePath returns the ledger location, defaulting to ledger.json or
// ledger.db in the config directory.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == BackendSQLite {
		return filepath.Join(dir, "ledger.db"), nil
	}
	return filepath.Join(dir, "ledger.json"), nil
}
