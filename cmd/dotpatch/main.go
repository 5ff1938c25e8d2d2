package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotpatch/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
