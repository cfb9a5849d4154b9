package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/sharedptr/control"
	"github.com/wippyai/sharedptr/handle"
)

const maxLogLines = 14

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	handleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	closeErr error
	session  *Session
	buf      *bytes.Buffer
	lines    []string
	input    textinput.Model
}

func newInteractiveModel(level zapcore.Level) *interactiveModel {
	buf := &bytes.Buffer{}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	log := zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(buf), level))
	control.SetLogger(log.Named("control"))
	handle.SetLogger(log.Named("handle"))

	ti := textinput.New()
	ti.Placeholder = "new A"
	ti.Prompt = "> "
	ti.Width = 40
	ti.Focus()

	return &interactiveModel{
		session: NewSession(buf, log.Named("payload")),
		buf:     buf,
		input:   ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.closeErr = m.session.Close()
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "exit" || line == "quit" {
				m.closeErr = m.session.Close()
				return m, tea.Quit
			}
			m.exec(line)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) exec(line string) {
	m.err = m.session.Exec(line)
	if line != "" {
		m.lines = append(m.lines, "> "+line)
	}
	m.drain()
}

// drain moves session output and log lines from the buffer into the
// scrollback.
func (m *interactiveModel) drain() {
	out := strings.TrimRight(m.buf.String(), "\n")
	m.buf.Reset()
	if out != "" {
		m.lines = append(m.lines, strings.Split(out, "\n")...)
	}
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Shared Handles"))
	b.WriteString("\n\n")

	names := m.session.Names()
	if len(names) == 0 {
		b.WriteString(emptyStyle.Render("  no handles yet"))
		b.WriteString("\n")
	}
	for _, name := range names {
		h, _ := m.session.Slot(name)
		if h.IsEmpty() {
			b.WriteString(fmt.Sprintf("  %-8s %s\n", handleStyle.Render(name), emptyStyle.Render("nullptr")))
			continue
		}
		b.WriteString(fmt.Sprintf("  %-8s %s %s block=%d\n",
			handleStyle.Render(name),
			h.Get().ID,
			countStyle.Render(fmt.Sprintf("count=%d", h.UseCount())),
			h.BlockID()))
	}

	tr := m.session.Tracker()
	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("created=%d live=%d destroyed=%d",
		tr.Created(), tr.Len(), tr.Destroyed())))
	b.WriteString("\n\n")

	for _, line := range m.lines {
		b.WriteString(logStyle.Render(line))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter run • help commands • esc quit"))

	return b.String()
}

func runInteractive(ctx context.Context, level zapcore.Level) error {
	return runModel(ctx, newInteractiveModel(level), tea.WithAltScreen())
}

// runModel runs m until it quits or ctx is done, then closes its session
// whatever the program returned.
func runModel(ctx context.Context, m *interactiveModel, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if ctxErr := interrupted(ctx); ctxErr != nil {
		err = ctxErr
	}
	if err == nil {
		err = m.closeErr
	}
	return multierr.Append(err, m.session.Close())
}
