package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"db48x/internal/rplvm"
	"db48x/internal/settings"
)

// replModel is the full-screen stack view: a scrollback of past
// input/output lines above a single-line text input, the same
// "spinner/progress region above one live line" layout
// internal/ui.progressModel uses, adapted from a read-only progress
// feed to an editable prompt.
type replModel struct {
	ev  *rplvm.Evaluator
	s   settings.Settings
	in  textinput.Model
	log []string

	width, height int
	quitting      bool
}

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	stackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	depthStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// runReplTUI drives a bubbletea program over the given evaluator until
// the user quits.
func runReplTUI(ev *rplvm.Evaluator, s settings.Settings) error {
	in := textinput.New()
	in.Placeholder = "1 2 +"
	in.Focus()
	in.CharLimit = 4096
	in.Prompt = "> "

	m := &replModel{ev: ev, s: s, in: in, width: 80, height: 24}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.in, cmd = m.in.Update(msg)
	return m, cmd
}

func (m *replModel) submit() {
	line := strings.TrimSpace(m.in.Value())
	m.in.SetValue("")
	if line == "" {
		return
	}
	m.log = append(m.log, promptStyle.Render("> ")+line)
	if line == ".quit" || line == ".exit" {
		m.quitting = true
		return
	}

	var logWriter logAppender = func(s string) { m.log = append(m.log, s) }
	if handled, err := runSessionCommand(m.ev, logWriter, line); handled {
		if err != nil {
			m.log = append(m.log, errorStyle.Render(err.Error()))
		}
		return
	}

	if err := evalLine(m.ev, m.s, line); err != nil {
		m.log = append(m.log, errorStyle.Render(err.Error()))
		return
	}
	depth := m.ev.Stack.Depth()
	if depth == 0 {
		m.log = append(m.log, depthStyle.Render("(empty stack)"))
		return
	}
	for n := depth; n >= 1; n-- {
		top, err := m.ev.Stack.Top(n)
		if err != nil {
			break
		}
		m.log = append(m.log, stackStyle.Render(fmt.Sprintf("%d: %s", n, renderValue(top, m.s))))
	}
}

func (m *replModel) View() string {
	if m.quitting {
		return ""
	}
	visible := m.height - 2
	if visible < 1 {
		visible = 1
	}
	lines := m.log
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(m.in.View())
	return b.String()
}

// logAppender adapts a closure to io.Writer so runSessionCommand (shared
// with the plain REPL) can append a formatted scrollback line without
// the TUI model needing its own bufio writer.
type logAppender func(string)

func (w logAppender) Write(p []byte) (int, error) {
	w(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

