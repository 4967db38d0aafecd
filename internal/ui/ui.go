package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	secondaryColor = lipgloss.Color("#00D9FF") // Cyan
	successColor   = lipgloss.Color("#04B575") // Green
	errorColor     = lipgloss.Color("#FF5F87") // Pink/Red
	warningColor   = lipgloss.Color("#FFAF00") // Orange
	mutedColor     = lipgloss.Color("#626262") // Gray

	// Title styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1).
			MarginBottom(1).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1).
			PaddingLeft(1)

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Icon styles
	checkmark = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true).
			SetString("✓")

	cross = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true).
		SetString("✗")

	arrow = lipgloss.NewStyle().
		Foreground(secondaryColor).
		SetString("→")

	dot = lipgloss.NewStyle().
		Foreground(mutedColor).
		SetString("•")

	// Item styles
	stepStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#FAFAFA"))

	keyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)
)

var (
	out     io.Writer = os.Stdout
	verbose bool
)

// SetOutput redirects all console output, e.g. to stderr when the export
// itself goes to stdout
func SetOutput(w io.Writer) {
	out = w
}

// Output returns the current console writer
func Output() io.Writer {
	return out
}

// PrintTitle prints a major title
func PrintTitle(title string) {
	fmt.Fprintln(out, titleStyle.Render(title))
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	fmt.Fprintln(out, headerStyle.Render("\n▸ "+title))
}

// PrintStep prints a numbered build step
func PrintStep(n, total int, step string) {
	fmt.Fprintln(out, stepStyle.Render(fmt.Sprintf("%s [%d/%d] %s", arrow.String(), n, total, step)))
}

// PrintItem prints an item in a list
func PrintItem(item string) {
	fmt.Fprintln(out, itemStyle.Render(dot.String()+" "+item))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Fprintln(out, stepStyle.Render(checkmark.String()+" "+successStyle.Render(message)))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintln(out, stepStyle.Render(cross.String()+" "+errorStyle.Render(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintln(out, stepStyle.Render("⚠ "+warningStyle.Render(message)))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Fprintln(out, stepStyle.Render(infoStyle.Render(message)))
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Fprintln(out, infoStyle.Render("─────────────────────────────────────────────"))
}

// PrintKeyValue prints "key: value"
func PrintKeyValue(key, value string) {
	fmt.Fprintln(out, stepStyle.Render(keyStyle.Render(key+":")+" "+value))
}

// maxColumnWidth caps table cells, longer cells are cut with "..."
const maxColumnWidth = 30

// Table collects rows and prints them with aligned columns
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. Missing cells are left empty, extra cells dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColumnWidth)
	}
	return widths
}

func fit(cell string, width int) string {
	if n := lipgloss.Width(cell); n <= width {
		return cell + strings.Repeat(" ", width-n)
	}
	r := []rune(cell)
	return string(r[:width-3]) + "..."
}

func joinRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = fit(cell, widths[i])
	}
	return strings.Join(parts, " │ ")
}

// lines returns the unstyled header, separator and rows
func (t *Table) lines() []string {
	widths := t.widths()

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}

	lines := []string{joinRow(t.headers, widths), strings.Join(rules, "─┼─")}
	for _, row := range t.rows {
		lines = append(lines, joinRow(row, widths))
	}
	return lines
}

// Print writes the table to the console output
func (t *Table) Print() {
	for i, line := range t.lines() {
		switch i {
		case 0:
			line = keyStyle.Render(line)
		case 1:
			line = infoStyle.Render(line)
		}
		fmt.Fprintln(out, stepStyle.Render(line))
	}
}

// SetVerbose enables verbose output
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose reports whether every build step is printed
func IsVerbose() bool {
	if verbose {
		return true
	}
	// CI runs always show the steps
	return os.Getenv("CI") != ""
}
