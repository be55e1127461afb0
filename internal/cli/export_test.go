package cli

import (
	"testing"
	"time"
)

// SetClockForTest fixes the command clock for the duration of t.
func SetClockForTest(t testing.TB, now time.Time) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = old })
}

// SetPromptTTYForTest makes prompts behave as if attached to a terminal
// (or not) for the duration of t.
func SetPromptTTYForTest(t testing.TB, tty bool) {
	t.Helper()
	old := promptTTY
	promptTTY = func() bool { return tty }
	t.Cleanup(func() { promptTTY = old })
}
