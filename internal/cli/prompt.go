package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rshade/carbontrack/internal/tui"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes").
	Accepted bool
	// Cancelled is true if reading the answer failed.
	Cancelled bool
}

// promptTTY reports whether prompts may be shown.
//
//nolint:gochecknoglobals // Swapped in tests.
var promptTTY = tui.IsTTY

// Confirm asks a yes/no question that defaults to "No". It declines at once
// when stdout is not a terminal.
func Confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	if !promptTTY() {
		return PromptResult{}
	}
	return confirm(writer, reader, question)
}

func confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	fmt.Fprintf(writer, "? %s [y/N] ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF (Ctrl+D) declines.
		return PromptResult{}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}
