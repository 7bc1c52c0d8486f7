package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/packerlschupfer/gDiagram/mermaid"
)

var lintCmd = &cobra.Command{
	Use:   "lint <diagram.mmd>",
	Short: "Validate a Mermaid diagram file",
	Long:  "Parse a Mermaid diagram and run validation rules, printing each finding with its severity. Exits non-zero when error-severity findings exist.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func severityLabel(s mermaid.Severity) string {
	switch s {
	case mermaid.Error:
		return errorStyle.Render("ERROR")
	case mermaid.Warning:
		return warningStyle.Render("WARNING")
	default:
		return infoStyle.Render("INFO")
	}
}

func runLint(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading diagram file: %w", err)
	}

	var diagnostics []mermaid.Diagnostic
	if detectGrammar(src) == "classDiagram" {
		diagnostics = mermaid.ValidateClassDiagram(mermaid.ParseClassDiagram(src))
	} else {
		diagnostics = mermaid.ValidateFlowchart(mermaid.ParseFlowchart(src))
	}

	if len(diagnostics) == 0 {
		fmt.Fprintln(os.Stderr, "no findings")
		return nil
	}

	for _, d := range diagnostics {
		line := fmt.Sprintf("%s %s: %s", severityLabel(d.Severity), d.Rule, d.Message)
		if d.Subject != "" {
			line += fmt.Sprintf(" (%s)", d.Subject)
		}
		fmt.Fprintln(os.Stderr, line)
	}

	if mermaid.HasErrors(diagnostics) {
		return fmt.Errorf("validation failed")
	}
	return nil
}
