package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PathCheck validates a typed path; a non-nil error keeps the prompt open.
type PathCheck func(path string) error

type pathModel struct {
	question  string
	input     textinput.Model
	check     PathCheck
	err       error
	done      bool
	cancelled bool
}

func newPathModel(question, placeholder string, check PathCheck) pathModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 72
	ti.Focus()
	return pathModel{question: question, input: ti, check: check}
}

func (m pathModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pathModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := cleanPath(m.input.Value())
			if value == "" {
				m.done, m.cancelled = true, true
				return m, tea.Quit
			}
			if m.check != nil {
				if err := m.check(value); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.input.SetValue(value)
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done, m.cancelled = true, true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m pathModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("[enter] accept  [esc] cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value returns the accepted path, or "" when cancelled.
func (m pathModel) Value() string {
	if m.cancelled {
		return ""
	}
	return cleanPath(m.input.Value())
}

// cleanPath strips whitespace and the quotes terminals add to dropped files.
func cleanPath(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return strings.TrimSpace(value)
}
