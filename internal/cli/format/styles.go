// Package format holds the shared terminal-output styling and locale
// helpers the CLI subcommands render through.
package format

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// HeaderStyle is for section headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	// TitleStyle is for a command's main title line.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")).
			MarginBottom(1)

	// LabelStyle is for key-value labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	// ValueStyle is for key-value values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	// DimStyle is for secondary information (offsets, sizes, counts).
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Faint(true)

	// WarnStyle flags parse warnings and unparsed-asset counts.
	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	// ErrStyle flags hard failures.
	ErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

// KV renders one "Label: value" line.
func KV(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}
