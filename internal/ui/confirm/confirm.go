// Package confirm is a one-question yes/no prompt for the terminal.
package confirm

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
	"github.com/muesli/termenv"
)

// Decision is an enumeration of decisions available in the prompt
type Decision int

const (
	// Undecided indicates the user has not made a selection yet
	Undecided Decision = iota

	// Accepted indicates a positive response
	Accepted

	// Denied indicates a negative response
	Denied
)

func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted reports whether the positive answer was selected
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

// Mode selects how an answer is entered
type Mode int

const (
	// Immediate decides on the first key press matching y or n
	Immediate Mode = iota

	// Strict requires the accepted text typed out in full, then enter
	Strict
)

type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
	Valid        lipgloss.Style
	Invalid      lipgloss.Style
}

// Model is the bubble tea model for the prompt
type Model struct {
	PromptPrefix string
	Prompt       string

	// AcceptedDecisionText and DeniedDecisionText are the answers shown to
	// the user. In Immediate mode only their first letter is matched.
	AcceptedDecisionText string
	DeniedDecisionText   string

	// DefaultValue is shown in upper case in the hint
	DefaultValue Decision

	Mode   Mode
	Styles Styles

	selected Decision
	renderer tea.Model
	done     bool
}

// New creates a new model with default settings.
func New() Model {
	return Model{
		PromptPrefix:         "? ",
		AcceptedDecisionText: "y",
		DeniedDecisionText:   "n",
		DefaultValue:         Denied,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(termenv.ANSIBrightBlack)),
			Valid:        lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(termenv.ANSIGreen)),
			Invalid:      lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(termenv.ANSIRed)),
		},
	}
}

// NewStrict creates a model that only accepts "YES" typed in full
func NewStrict() Model {
	m := New()
	m.Mode = Strict
	m.AcceptedDecisionText = "YES"
	m.DeniedDecisionText = "no"
	return m
}

// Selected returns the user-selected Decision
func (m *Model) Selected() Decision {
	return m.selected
}

// Value returns the Decision as the text the user picked
func (m *Model) Value() string {
	switch m.selected {
	case Accepted:
		return m.AcceptedDecisionText
	case Denied:
		return m.DeniedDecisionText
	}
	return ""
}

// SetDecision allows for externally setting the decision to a supported value
func (m *Model) SetDecision(decision Decision) {
	m.selected = decision
}

// Init satisfies the tea.Model interface
func (m *Model) Init() tea.Cmd {
	m.selected = Undecided
	switch m.Mode {
	case Strict:
		m.renderer = &strictRenderer{m: m}
	default:
		m.renderer = &immediateRenderer{m: m}
	}
	return m.renderer.Init()
}

// Update satisfies the tea.Model interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.renderer.Update(msg)
}

// View satisfies the tea.Model interface
func (m *Model) View() string {
	return m.renderer.View()
}

// Ask shows prompt on out, reads the answer from in and reports whether
// it was accepted. Interrupting the prompt counts as a denial.
func Ask(m Model, in io.Reader, out io.Writer) (bool, error) {
	p := tea.NewProgram(&m, tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return false, err
	}
	return m.Selected().IsAccepted(), nil
}
