package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/list-bridge/bind"
	"github.com/wippyai/list-bridge/seq"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	seqStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	adapter  *seq.Adapter
	bindings *bind.Bindings
	elemName string
	input    textinput.Model
	history  viewport.Model
	lines    []string
	ready    bool
}

func newInteractiveModel(elemName string, quota int) (*interactiveModel, error) {
	a, b, err := newAdapter(elemName, quota)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "append=1"
	ti.Prompt = "> "
	ti.Focus()

	return &interactiveModel{
		adapter:  a,
		bindings: b,
		elemName: elemName,
		input:    ti,
	}, nil
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "q" || line == "quit" {
				return m, tea.Quit
			}
			if line != "" {
				m.exec(line)
			}
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.history = viewport.New(msg.Width, msg.Height-5)
			m.ready = true
		} else {
			m.history.Width = msg.Width
			m.history.Height = msg.Height - 5
		}
		m.refresh()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.history, cmd = m.history.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *interactiveModel) exec(line string) {
	name, args, err := parseOp(m.adapter, line)
	if err != nil {
		m.lines = append(m.lines, errorStyle.Render(fmt.Sprintf("%s: %v", line, err)))
		m.refresh()
		return
	}

	result, err := m.bindings.Call(m.adapter, name, args...)
	switch {
	case err != nil:
		m.lines = append(m.lines, errorStyle.Render(fmt.Sprintf("%s: %v", line, err)))
	case result != nil:
		m.lines = append(m.lines, fmt.Sprintf("%s -> %s", line, resultStyle.Render(formatResult(m.adapter, result))))
	default:
		m.lines = append(m.lines, fmt.Sprintf("%s -> ok", line))
	}
	m.refresh()
}

func (m *interactiveModel) refresh() {
	if !m.ready {
		return
	}
	m.history.SetContent(strings.Join(m.lines, "\n"))
	m.history.GotoBottom()
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("listctl"))
	b.WriteString(" elem=" + m.elemName + "  ")

	snap, err := m.adapter.Snapshot()
	if err != nil {
		b.WriteString(errorStyle.Render(err.Error()))
	} else {
		b.WriteString(seqStyle.Render(formatSnapshot(m.adapter, snap)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.history.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("append=V insert=IDX:V get=IDX pop[=IDX] remove=IDX len clear iterate eq=V;V • q quit"))
	return b.String()
}

func runInteractive(elemName string, quota int) error {
	m, err := newInteractiveModel(elemName, quota)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
