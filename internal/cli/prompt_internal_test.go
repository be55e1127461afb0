package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  PromptResult
	}{
		{name: "yes", input: "y\n", want: PromptResult{Accepted: true}},
		{name: "full yes mixed case", input: "YeS\n", want: PromptResult{Accepted: true}},
		{name: "empty defaults to no", input: "\n", want: PromptResult{}},
		{name: "anything else declines", input: "sure\n", want: PromptResult{}},
		{name: "eof declines", input: "", want: PromptResult{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := confirm(&out, strings.NewReader(tt.input), "Replace?")
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Replace? [y/N]")
		})
	}
}
