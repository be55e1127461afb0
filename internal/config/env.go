package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvHome           = "CARBONTRACK_HOME"
	EnvLogLevel       = "CARBONTRACK_LOG_LEVEL"
	EnvLogFormat      = "CARBONTRACK_LOG_FORMAT"
	EnvLogFile        = "CARBONTRACK_LOG_FILE"
	EnvOutputFormat   = "CARBONTRACK_OUTPUT_FORMAT"
	EnvStorageBackend = "CARBONTRACK_STORAGE_BACKEND"
	EnvStoragePath    = "CARBONTRACK_STORAGE_PATH"
	EnvMonthlyGoal    = "CARBONTRACK_MONTHLY_GOAL"
)

// LoadDotEnv loads dir/.env into the process environment. Variables already
// set win. A missing file is not an error.
func LoadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnvOverrides copies CARBONTRACK_* variables onto cfg. Unparseable
// numbers are ignored.
func ApplyEnvOverrides(cfg *Config) {
	strOverrides := map[string]*string{
		EnvLogLevel:       &cfg.Logging.Level,
		EnvLogFormat:      &cfg.Logging.Format,
		EnvLogFile:        &cfg.Logging.File,
		EnvOutputFormat:   &cfg.Output.DefaultFormat,
		EnvStorageBackend: &cfg.Storage.Backend,
		EnvStoragePath:    &cfg.Storage.Path,
	}
	for env, field := range strOverrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}

	if v := os.Getenv(EnvMonthlyGoal); v != "" {
		if goal, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Profile.MonthlyGoal = goal
		}
	}
}
