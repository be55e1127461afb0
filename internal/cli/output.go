package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/tui"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// addOutputFlag registers --output with the configured default.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", config.GetDefaultOutputFormat(),
		"Output format: table, json, or ndjson")
}

// resolveOutputFormat validates an --output value.
func resolveOutputFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = config.FormatTable
	}
	if !slices.Contains([]string{config.FormatTable, config.FormatJSON, config.FormatNDJSON}, f) {
		return "", fmt.Errorf("%w: got %q", config.ErrInvalidOutputFormat, format)
	}
	return f, nil
}

// styledEnabled reports whether table output should use lipgloss styling.
func styledEnabled(format string, plain bool) bool {
	return format == config.FormatTable && tui.DetectOutputMode(plain, false) == tui.OutputModeStyled
}

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderNDJSON writes one compact JSON document per item. A closed pipe ends
// the stream without error.
func renderNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			if isBrokenPipe(err) {
				return nil
			}
			return err
		}
	}
	return nil
}

// isBrokenPipe checks if an error is a broken pipe error (SIGPIPE), as when
// output is piped to `head`.
func isBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return strings.Contains(err.Error(), "broken pipe")
}

// BudgetExitError carries the process exit code for a triggered budget alert
// when budget.exit_on_threshold is set.
type BudgetExitError struct {
	ExitCode int
	Reason   string
}

func (e *BudgetExitError) Error() string {
	return e.Reason
}
