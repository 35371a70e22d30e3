package confirm

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// newInput builds the text field both renderers type into
func newInput(m *Model, placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	if strings.HasSuffix(m.Prompt, " ") {
		input.Prompt = m.Prompt
	} else {
		input.Prompt = m.Prompt + " "
	}
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.TextStyle = m.Styles.Text
	input.CharLimit = limit
	input.Focus()
	return input
}

// hint renders "y/N" with the default answer upper-cased
func hint(m *Model) string {
	yes, no := m.AcceptedDecisionText, m.DeniedDecisionText
	switch m.DefaultValue {
	case Accepted:
		yes = strings.ToUpper(yes)
	case Denied:
		no = strings.ToUpper(no)
	}
	return yes + "/" + no
}

// header renders the prompt prefix and, once answered, the question and
// the answer in place of the input field
func header(m *Model) string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		render := m.Styles.PromptPrefix.Inline(true).Render
		b.WriteString(render(m.PromptPrefix))
		if !strings.HasSuffix(m.PromptPrefix, " ") {
			b.WriteString(render(" "))
		}
	}
	if m.done {
		if m.Prompt != "" {
			render := m.Styles.Prompt.Inline(true).Render
			b.WriteString(render(m.Prompt))
			b.WriteString(render(" "))
		}
		b.WriteString(m.Value())
		b.WriteRune('\n')
	}
	return b.String()
}

func (m *Model) finish(d Decision) (tea.Model, tea.Cmd) {
	m.SetDecision(d)
	m.done = true
	return m, tea.Quit
}

// immediateRenderer decides on the first matching key press
type immediateRenderer struct {
	m    *Model
	text textinput.Model
}

func (i *immediateRenderer) Init() tea.Cmd {
	i.text = newInput(i.m, hint(i.m), 1)
	return nil
}

func (i *immediateRenderer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return i.m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return i.m.finish(Denied)
	case tea.KeyEnter:
		if i.m.DefaultValue != Undecided {
			return i.m.finish(i.m.DefaultValue)
		}
		return i.m, nil
	}

	s := key.String()
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		return i.m, nil
	}
	switch strings.ToLower(s) {
	case strings.ToLower(i.m.AcceptedDecisionText[:1]):
		return i.m.finish(Accepted)
	case strings.ToLower(i.m.DeniedDecisionText[:1]):
		return i.m.finish(Denied)
	}
	return i.m, nil
}

func (i *immediateRenderer) View() string {
	if i.m.done {
		return header(i.m)
	}
	return header(i.m) + i.text.View()
}

// strictRenderer only lets the accepted text be typed, one character at a
// time, and accepts on enter once it is complete
type strictRenderer struct {
	m    *Model
	text textinput.Model
}

func (s *strictRenderer) Init() tea.Cmd {
	s.text = newInput(s.m, s.m.AcceptedDecisionText, len(s.m.AcceptedDecisionText))
	return nil
}

// nextChar reports whether in continues the accepted text after current
func (s *strictRenderer) nextChar(in, current string) bool {
	want := s.m.AcceptedDecisionText
	return len(current) < len(want) && in == want[len(current):len(current)+1]
}

func (s *strictRenderer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s.m, nil
	}

	var cmd tea.Cmd
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return s.m.finish(Denied)
	case tea.KeyEnter:
		if s.text.Value() == s.m.AcceptedDecisionText {
			return s.m.finish(Accepted)
		}
	case tea.KeyBackspace:
		s.text, cmd = s.text.Update(msg)
	default:
		if s.nextChar(key.String(), s.text.Value()) {
			s.text, cmd = s.text.Update(msg)
		}
	}
	return s.m, cmd
}

func (s *strictRenderer) View() string {
	if s.m.done {
		return header(s.m)
	}

	var b strings.Builder
	b.WriteString(header(s.m))
	b.WriteString(s.text.View())
	b.WriteString(" ")
	if s.text.Value() == s.m.AcceptedDecisionText {
		b.WriteString(s.m.Styles.Valid.Render("✓"))
	} else {
		b.WriteString(s.m.Styles.Invalid.Render("✗"))
	}
	return b.String()
}
