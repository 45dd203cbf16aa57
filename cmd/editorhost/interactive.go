package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/editorbind/config"
	"github.com/wippyai/editorbind/engine"
	"github.com/wippyai/editorbind/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("#7D56F4"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const paneWidth = 40

type interactiveModel struct {
	err      error
	host     *host
	spinner  spinner.Model
	areas    []textarea.Model
	readOnly []bool
	status   string
	focus    int
	theme    int
	ready    bool
}

type engineReadyMsg struct {
	err error
}

func newInteractiveModel() *interactiveModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = infoStyle
	return &interactiveModel{spinner: s}
}

func (m *interactiveModel) attach(h *host) {
	m.host = h
	m.areas = make([]textarea.Model, len(h.panes))
	m.readOnly = make([]bool, len(h.panes))
	for i, p := range h.panes {
		ta := textarea.New()
		ta.SetWidth(paneWidth)
		ta.SetHeight(10)
		ta.Placeholder = p.cfg.Name
		ta.SetValue(p.editor.Value())
		m.areas[i] = ta
	}
	for i, name := range engine.BuiltinThemes {
		if name == h.cfg.Theme {
			m.theme = i
		}
	}
}

// onChange is called synchronously while Update applies a keystroke.
func (m *interactiveModel) onChange(p *pane, ev runtime.ChangeEvent) {
	if p == m.host.primary() {
		m.host.diff.SetModified(ev.Value)
	}
	m.status = fmt.Sprintf("%s changed (%d bytes)", p.cfg.Name, len(ev.Value))
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.mount)
}

func (m *interactiveModel) mount() tea.Msg {
	return engineReadyMsg{err: m.host.mount(context.Background())}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.host.unmount()
			return m, tea.Quit

		case "tab":
			if m.ready {
				m.areas[m.focus].Blur()
				m.focus = (m.focus + 1) % len(m.areas)
				m.areas[m.focus].Focus()
			}
			return m, nil

		case "ctrl+t":
			m.theme = (m.theme + 1) % len(engine.BuiltinThemes)
			for _, p := range m.host.panes {
				p.editor.SetTheme(engine.BuiltinThemes[m.theme])
			}
			m.host.diff.SetTheme(engine.BuiltinThemes[m.theme])
			return m, nil

		case "ctrl+r":
			m.readOnly[m.focus] = !m.readOnly[m.focus]
			m.host.panes[m.focus].editor.SetReadOnly(m.readOnly[m.focus])
			return m, nil

		case "ctrl+z":
			if inner := m.host.panes[m.focus].editor.Editor(); inner != nil {
				inner.Undo()
			}
			m.syncAreas(-1)
			return m, nil
		}

	case engineReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ready = true
		m.syncAreas(-1)
		m.areas[m.focus].Focus()
		return m, textarea.Blink

	case spinner.TickMsg:
		if m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.ready {
		return m, nil
	}

	var cmd tea.Cmd
	m.areas[m.focus], cmd = m.areas[m.focus].Update(msg)
	m.pushFocused()
	m.syncAreas(m.focus)
	return m, cmd
}

// pushFocused types the focused text area's content into its editor.
func (m *interactiveModel) pushFocused() {
	p := m.host.panes[m.focus]
	inner := p.editor.Editor()
	if inner == nil {
		return
	}
	text := m.areas[m.focus].Value()
	if text == inner.Value() {
		return
	}
	if inner.ReadOnly() {
		m.areas[m.focus].SetValue(inner.Value())
		m.status = p.cfg.Name + " is read-only"
		return
	}
	runtime.SetEditorValue(inner, text)
}

// syncAreas copies editor values into every text area except skip.
func (m *interactiveModel) syncAreas(skip int) {
	for i, p := range m.host.panes {
		if i == skip {
			continue
		}
		if v := p.editor.Value(); m.areas[i].Value() != v {
			m.areas[i].SetValue(v)
		}
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress esc to quit.", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Editor Host"))
	b.WriteString(" ")
	b.WriteString(infoStyle.Render(engine.BuiltinThemes[m.theme]))
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading editor engine...\n")
		return b.String()
	}

	views := make([]string, len(m.areas))
	for i, p := range m.host.panes {
		style := paneStyle
		if i == m.focus {
			style = focusedPaneStyle
		}
		header := nameStyle.Render(p.cfg.Name)
		if m.readOnly[i] {
			header += helpStyle.Render(" (read-only)")
		}
		views[i] = style.Render(header + "\n" + m.areas[i].View())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	b.WriteString("\n")

	d := m.host.diff
	b.WriteString(infoStyle.Render(fmt.Sprintf("diff %s: original %d lines, modified %d lines, previous %d lines",
		m.host.primary().cfg.Name,
		lineCount(d.Original()), lineCount(d.Modified()), lineCount(d.Previous().Get()))))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next pane • ctrl+t theme • ctrl+r read-only • ctrl+z undo • esc quit"))
	return b.String()
}

func runInteractive(cfg *config.Config, logger *zap.Logger) error {
	m := newInteractiveModel()
	h, err := newHost(cfg, logger, m.onChange)
	if err != nil {
		return err
	}
	m.attach(h)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
