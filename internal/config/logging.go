package config

import (
	"path/filepath"

	"github.com/rshade/carbontrack/internal/logging"
)

// ToLoggingConfig converts the logging section for logging.NewLoggerWithPath.
// A configured file switches the output to that file; otherwise logs go to
// stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// ToAuditConfig converts the audit subsection for logging.NewAuditLogger.
// An enabled audit log without a file writes audit.log in the config
// directory.
func (lc *LoggingConfig) ToAuditConfig() logging.AuditLoggerConfig {
	file := lc.Audit.File
	if lc.Audit.Enabled && file == "" {
		if dir, err := GetConfigDir(); err == nil {
			file = filepath.Join(dir, "audit.log")
		}
	}
	return logging.AuditLoggerConfig{Enabled: lc.Audit.Enabled, File: file}
}

// GetLoggingConfig returns a copy of the global logging section. Flag
// overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
