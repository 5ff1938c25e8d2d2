package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotpatch/pkg/pipeline"
	"github.com/charmbracelet/lipgloss"
)

var (
	updatedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// printSummary writes one line per attempted target
func printSummary(w io.Writer, result *pipeline.Result) {
	for _, tr := range result.Targets {
		switch {
		case tr.Err != nil:
			name := tr.Target
			if name == "" {
				name = tr.PatchDir
			}
			fmt.Fprintf(w, "%s %s\n", failedStyle.Render("failed   "), name)
		case tr.Changed:
			fmt.Fprintf(w, "%s %s (%s)\n", updatedStyle.Render("updated  "), tr.Target, plural(tr.Fragments, "fragment"))
		default:
			fmt.Fprintf(w, "%s %s\n", unchangedStyle.Render("unchanged"), tr.Target)
		}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
