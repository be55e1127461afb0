// Package tui renders carbontrack output for terminals: styled summaries for
// non-interactive output and the interactive Bubble Tea dashboard.
package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how table output is rendered.
type OutputMode int

// Output modes.
const (
	// OutputModePlain is uncolored text, used for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled adds lipgloss styling.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	minWidth      = 40
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of stdout, or a default when unknown.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < minWidth {
		return defaultWidth
	}
	return w
}

// DetectOutputMode picks the richest mode the environment supports.
// NO_COLOR, TERM=dumb and CI force plain output. interactive requests the
// TUI, which needs both stdin and stdout to be terminals.
func DetectOutputMode(forcePlain, interactive bool) OutputMode {
	return detectOutputMode(forcePlain, interactive, IsTTY() && term.IsTerminal(int(os.Stdin.Fd())), os.LookupEnv)
}

func detectOutputMode(
	forcePlain, interactive, tty bool,
	lookupEnv func(string) (string, bool),
) OutputMode {
	if forcePlain || !tty {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return OutputModePlain
	}
	if v, _ := lookupEnv("TERM"); v == "dumb" {
		return OutputModePlain
	}
	if _, ok := lookupEnv("CI"); ok {
		return OutputModePlain
	}
	if interactive {
		return OutputModeInteractive
	}
	return OutputModeStyled
}
