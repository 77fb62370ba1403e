package cmd

import (
	"strings"
	"testing"
)

func TestCompletionCommandOutputsScripts(t *testing.T) {
	tests := []struct {
		name   string
		shell  string
		needle string
	}{
		{name: "bash", shell: "bash", needle: "# bash completion V2 for tickler"},
		{name: "zsh", shell: "zsh", needle: "#compdef tickler"},
		{name: "fish", shell: "fish", needle: "# fish completion for tickler"},
		{name: "powershell", shell: "powershell", needle: "# powershell completion for tickler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			output := h.mustRun("completion", tt.shell)
			if !strings.Contains(output, tt.needle) {
				t.Fatalf("completion output missing %q for shell %q", tt.needle, tt.shell)
			}
		})
	}
}
