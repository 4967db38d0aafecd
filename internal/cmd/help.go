package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderExportHelp renders the help text for the export command with lipgloss styling
func renderExportHelp() string {
	// Define styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginTop(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	commandStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	commentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Examples"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("STL mode - every file becomes a part"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("go3mfexport export left.stl right.stl -o pair.3mf"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Project mode - names, colors and settings from YAML"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("go3mfexport export project.yaml"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Write to stdout, the model XML goes to stderr"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("go3mfexport export part.stl -o - --print-model > part.3mf"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Color modes:"))
	b.WriteString("\n")

	modes := []struct {
		flag string
		desc string
	}{
		{"none", "No colors or materials are written"},
		{"model", "Face colors of the model, the export color for the rest"},
		{"selected-only", "Every object gets the export color"},
	}

	// Calculate max flag width for alignment
	maxWidth := 0
	for _, m := range modes {
		if len(m.flag) > maxWidth {
			maxWidth = len(m.flag)
		}
	}

	for _, m := range modes {
		padding := strings.Repeat(" ", maxWidth-len(m.flag)+2)
		b.WriteString("  " + flagStyle.Render(m.flag) + padding + commentStyle.Render(m.desc))
		b.WriteString("\n")
	}

	return b.String()
}
