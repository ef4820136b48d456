// Package confirm implements a minimal bubbletea yes/no prompt, used to
// gate a rebuild that would drop assets the session left unparsed.
package confirm

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
)

type model struct {
	question string
	answer   bool
	done     bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.answer = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "enter", "esc", "ctrl+c":
		m.answer = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", promptStyle.Render(m.question), hintStyle.Render("[y/N]"))
}

// Ask runs an interactive y/N prompt and reports whether the user
// confirmed. Only y/Y confirms; n/N, Enter, Esc, Ctrl+C, or the program
// ending without an answer count as "no", and other keys are ignored while
// the prompt waits. A save or transfer that would silently drop unparsed
// assets never proceeds on an ambiguous answer.
func Ask(question string) (bool, error) {
	question = strings.TrimSuffix(question, "?") + "?"
	p := tea.NewProgram(model{question: question})
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	return final.(model).answer, nil
}
