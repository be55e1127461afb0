package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned by Get and Set for keys that do not exist.
var ErrUnknownKey = errors.New("unknown config key")

type keyAccessor struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringKey(field func(*Config) *string) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return *field(c) },
		set: func(c *Config, v string) error {
			*field(c) = v
			return nil
		},
	}
}

func intKey(field func(*Config) *int) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return strconv.Itoa(*field(c)) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("expected an integer, got %q", v)
			}
			*field(c) = n
			return nil
		},
	}
}

func floatKey(field func(*Config) *float64) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return strconv.FormatFloat(*field(c), 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("expected a number, got %q", v)
			}
			*field(c) = f
			return nil
		},
	}
}

func boolKey(field func(*Config) *bool) keyAccessor {
	return keyAccessor{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", v)
			}
			*field(c) = b
			return nil
		},
	}
}

//nolint:gochecknoglobals // Constant lookup table
var keyTable = map[string]keyAccessor{
	"output.default_format": stringKey(func(c *Config) *string { return &c.Output.DefaultFormat }),
	"output.precision":      intKey(func(c *Config) *int { return &c.Output.Precision }),

	"logging.level":         stringKey(func(c *Config) *string { return &c.Logging.Level }),
	"logging.format":        stringKey(func(c *Config) *string { return &c.Logging.Format }),
	"logging.file":          stringKey(func(c *Config) *string { return &c.Logging.File }),
	"logging.audit.enabled": boolKey(func(c *Config) *bool { return &c.Logging.Audit.Enabled }),
	"logging.audit.file":    stringKey(func(c *Config) *string { return &c.Logging.Audit.File }),

	"storage.backend": stringKey(func(c *Config) *string { return &c.Storage.Backend }),
	"storage.path":    stringKey(func(c *Config) *string { return &c.Storage.Path }),

	"profile.name":         stringKey(func(c *Config) *string { return &c.Profile.Name }),
	"profile.location":     stringKey(func(c *Config) *string { return &c.Profile.Location }),
	"profile.monthly_goal": floatKey(func(c *Config) *float64 { return &c.Profile.MonthlyGoal }),
	"profile.yearly_goal":  floatKey(func(c *Config) *float64 { return &c.Profile.YearlyGoal }),
	"profile.units":        stringKey(func(c *Config) *string { return &c.Profile.Units }),

	"dashboard.average_window_days": intKey(func(c *Config) *int { return &c.Dashboard.AverageWindowDays }),
	"dashboard.trend_months":        intKey(func(c *Config) *int { return &c.Dashboard.TrendMonths }),
	"dashboard.recent_entries":      intKey(func(c *Config) *int { return &c.Dashboard.RecentEntries }),

	"budget.exit_on_threshold": boolKey(func(c *Config) *bool { return &c.Budget.ExitOnThreshold }),
	"budget.exit_code":         intKey(func(c *Config) *int { return &c.Budget.ExitCode }),
}

// Keys returns every dotted key accepted by Get and Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(keyTable))
	for k := range keyTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value at a dotted key such as "profile.monthly_goal".
func (c *Config) Get(key string) (string, error) {
	acc, ok := keyTable[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return acc.get(c), nil
}

// Set parses value into the field at a dotted key. The result is validated
// and the previous value restored when validation fails.
func (c *Config) Set(key, value string) error {
	k := strings.ToLower(strings.TrimSpace(key))
	acc, ok := keyTable[k]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	previous := acc.get(c)
	if err := acc.set(c, value); err != nil {
		return fmt.Errorf("setting %s: %w", k, err)
	}
	if err := c.Validate(); err != nil {
		_ = acc.set(c, previous)
		return fmt.Errorf("setting %s: %w", k, err)
	}
	return nil
}

// List returns every key and its current value.
func (c *Config) List() map[string]string {
	out := make(map[string]string, len(keyTable))
	for k, acc := range keyTable {
		out[k] = acc.get(c)
	}
	return out
}
