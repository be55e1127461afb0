package cli_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/cli"
	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/footprint"
)

// testNow is the fixed clock of the command tests.
//
//nolint:gochecknoglobals // Test fixture
var testNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

// setupCLITest isolates the config directory and fixes the clock. It
// returns the config directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv("NO_COLOR", "1")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	cli.SetClockForTest(t, testNow)
	return home
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// runCLIWithInput is runCLI with stdin fed from input.
func runCLIWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// mustRunCLI is runCLI that fails the test on error.
func mustRunCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, args...)
	require.NoError(t, err, "carbontrack %v", args)
	return out
}

// listEntriesJSON is the decoded `entry list -o json` document.
type listEntriesJSON struct {
	Entries []footprint.Entry `json:"entries"`
	Stats   struct {
		Count int     `json:"count"`
		Total float64 `json:"total"`
	} `json:"stats"`
	Pagination *struct {
		CurrentPage int  `json:"current_page"`
		TotalItems  int  `json:"total_items"`
		TotalPages  int  `json:"total_pages"`
		HasNext     bool `json:"has_next"`
	} `json:"pagination"`
}

func listEntries(t *testing.T, args ...string) listEntriesJSON {
	t.Helper()
	out := mustRunCLI(t, append([]string{"entry", "list", "-o", "json"}, args...)...)
	var doc listEntriesJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	return doc
}

func addEntry(t *testing.T, category, subcategory, amount string, extra ...string) {
	t.Helper()
	args := append([]string{
		"entry", "add", "--category", category, "--subcategory", subcategory, "--amount", amount,
	}, extra...)
	mustRunCLI(t, args...)
}
