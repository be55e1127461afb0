package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// AuditEntry records one mutation of the ledger.
type AuditEntry struct {
	Action     string
	TraceID    string
	Target     string
	Parameters map[string]string
	Success    bool
	Error      string
	Duration   time.Duration
	Timestamp  time.Time
}

// NewAuditEntry starts an entry for action on target, stamped now.
func NewAuditEntry(action, target, traceID string) *AuditEntry {
	return &AuditEntry{
		Action:     action,
		Target:     target,
		TraceID:    traceID,
		Parameters: map[string]string{},
		Timestamp:  time.Now(),
	}
}

// WithParam records a parameter and returns the entry for chaining.
func (e *AuditEntry) WithParam(key, value string) *AuditEntry {
	e.Parameters[key] = value
	return e
}

// Finish sets the outcome and duration from err and the entry timestamp.
func (e *AuditEntry) Finish(err error) *AuditEntry {
	e.Duration = time.Since(e.Timestamp)
	e.Success = err == nil
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// AuditLogger writes audit entries.
type AuditLogger interface {
	Log(ctx context.Context, entry *AuditEntry)
	Enabled() bool
	Close() error
}

// AuditLoggerConfig configures the file-backed audit logger.
type AuditLoggerConfig struct {
	Enabled bool
	File    string
}

type fileAuditLogger struct {
	mu     sync.Mutex
	logger zerolog.Logger
	closer io.Closer
}

// NewAuditLogger returns a JSON-lines audit logger for cfg. A disabled config
// or empty file yields a no-op logger.
func NewAuditLogger(cfg AuditLoggerConfig) (AuditLogger, error) {
	if !cfg.Enabled || cfg.File == "" {
		return nopAuditLogger{}, nil
	}
	f, err := openLogFile(cfg.File)
	if err != nil {
		return nopAuditLogger{}, fmt.Errorf("opening audit log: %w", err)
	}
	return newWriterAuditLogger(f, f), nil
}

func newWriterAuditLogger(w io.Writer, c io.Closer) *fileAuditLogger {
	return &fileAuditLogger{
		logger: zerolog.New(w).With().Str("log_type", "audit").Logger(),
		closer: c,
	}
}

func (a *fileAuditLogger) Log(_ context.Context, e *AuditEntry) {
	if e == nil {
		return
	}
	params := zerolog.Dict()
	for k, v := range e.Parameters {
		params = params.Str(k, v)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ev := a.logger.Log().
		Time("timestamp", e.Timestamp).
		Str("action", e.Action).
		Str("target", e.Target).
		Dict("parameters", params).
		Bool("success", e.Success).
		Dur("duration", e.Duration)
	if e.TraceID != "" {
		ev = ev.Str("trace_id", e.TraceID)
	}
	if e.Error != "" {
		ev = ev.Str("error", e.Error)
	}
	ev.Send()
}

func (a *fileAuditLogger) Enabled() bool { return true }

func (a *fileAuditLogger) Close() error {
	if a.closer == nil || a.closer == os.Stderr {
		return nil
	}
	return a.closer.Close()
}

type nopAuditLogger struct{}

func (nopAuditLogger) Log(context.Context, *AuditEntry) {}
func (nopAuditLogger) Enabled() bool                    { return false }
func (nopAuditLogger) Close() error                     { return nil }
