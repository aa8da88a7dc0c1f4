package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/trace-bridge/bridge"
	"github.com/wippyai/trace-bridge/tracing"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2D7D9A")).
			Padding(0, 1)

	hookStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type feedMsg string

type interactiveModel struct {
	tracer   *tracing.Tracer
	feed     chan string
	viewport viewport.Model
	lines    []string
	ready    bool
}

func runInteractive(wasmFile string) error {
	feed := make(chan string, 64)

	obj, cleanup, err := buildObject(wasmFile, func(line string) {
		feed <- line
	})
	if err != nil {
		return err
	}

	tracer := tracing.New(tracing.WithLayer(bridge.New(obj)))

	m := &interactiveModel{
		tracer: tracer,
		feed:   feed,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	tracer.Close()
	cleanup()
	return err
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.waitForLine
}

func (m *interactiveModel) waitForLine() tea.Msg {
	return feedMsg(<-m.feed)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "s":
			go func() {
				if err := runDemo(m.tracer, "simple"); err != nil {
					m.feed <- errorStyle.Render(err.Error())
				}
			}()

		case "n":
			go func() {
				if err := runDemo(m.tracer, "nested"); err != nil {
					m.feed <- errorStyle.Render(err.Error())
				}
			}()

		case "e":
			go m.tracer.Event(context.Background(), tracing.LevelInfo, "manual event")

		case "c":
			m.lines = nil
			m.viewport.SetContent("")
		}

	case feedMsg:
		m.lines = append(m.lines, hookStyle.Render(string(msg)))
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
		return m, m.waitForLine

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("trace-bridge: foreign callback feed"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s: simple demo • n: nested demo • e: orphan event • c: clear • q: quit"))
	return b.String()
}
