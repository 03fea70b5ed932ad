package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type noticeMsg string

// noticeClosedMsg stops re-arming the notice listener.
type noticeClosedMsg struct{}

type confirmModel struct {
	question string
	details  []string
	notices  <-chan string
	notice   string
	done     bool
	yes      bool
}

func newConfirmModel(question string, details []string, notices <-chan string) confirmModel {
	return confirmModel{question: question, details: details, notices: notices}
}

func (m confirmModel) Init() tea.Cmd {
	return waitForNotice(m.notices)
}

func waitForNotice(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		notice, ok := <-ch
		if !ok {
			return noticeClosedMsg{}
		}
		return noticeMsg(notice)
	}
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case noticeMsg:
		m.notice = string(msg)
		return m, waitForNotice(m.notices)
	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "y", "enter":
			m.done, m.yes = true, true
			return m, tea.Quit
		case "n", "esc", "q", "ctrl+c":
			m.done, m.yes = true, false
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question))
	b.WriteString("\n")
	for _, line := range m.details {
		b.WriteString(detailStyle.Render(line))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render("✓ " + m.notice))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("[Y/enter] yes  [n/esc] no"))
	b.WriteString("\n")
	return b.String()
}
