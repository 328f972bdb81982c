// Package tui renders a running trajectory in the terminal: a sparkline of
// the reaction coordinate with a live state panel.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rpmd/internal/config"
	"github.com/san-kum/rpmd/internal/experiment"
	"github.com/san-kum/rpmd/internal/geometry"
	"github.com/san-kum/rpmd/internal/ringpoly"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const historyLen = 160

type Model struct {
	cfg *config.Config
	exp *experiment.Experiment

	dims    ringpoly.Dims
	primed  bool
	paused  bool
	done    bool
	err     error
	steps   int
	history []float64

	stepsPerFrame int
	width         int
	height        int
}

func NewModel(cfg *config.Config, stepsPerFrame int) (*Model, error) {
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, err
	}
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return &Model{
		cfg:           cfg,
		exp:           exp,
		dims:          cfg.Dims(),
		history:       make([]float64, 0, historyLen),
		stepsPerFrame: stepsPerFrame,
		width:         80,
		height:        24,
	}, nil
}

// Run blocks until the view is quit or the trajectory finishes with an error.
func Run(cfg *config.Config, stepsPerFrame int) error {
	m, err := NewModel(cfg, stepsPerFrame)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.paused || m.done {
			return m, tick()
		}
		m.advance()
		if m.err != nil {
			m.done = true
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	state := m.exp.State()
	stepper := m.exp.Stepper()

	if !m.primed {
		if err := stepper.Prime(state); err != nil {
			m.err = err
			return
		}
		m.primed = true
	}

	for i := 0; i < m.stepsPerFrame; i++ {
		if m.steps >= m.cfg.Steps {
			m.done = true
			return
		}
		if err := stepper.Step(state); err != nil {
			m.err = err
			return
		}
		m.steps++
	}

	m.history = append(m.history, state.Xi)
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(fmt.Sprintf("rpmd live  %s / %s", m.cfg.Potential.Name, m.cfg.Mode)))
	b.WriteString("\n\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(10),
			asciigraph.Width(min(m.width-10, 100)),
			asciigraph.Caption("reaction coordinate"),
		)
		b.WriteString(graph)
		b.WriteString("\n\n")
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(dim.Render("space pause   q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return red.Render(fmt.Sprintf("failed: %v", m.err))
	}

	state := m.exp.State()
	ke, _ := geometry.KineticEnergy(m.dims, state.Momentum, m.cfg.Masses)
	re, _ := geometry.RingEnergy(m.dims, state.Position, m.cfg.Masses, m.cfg.Beta)

	line := fmt.Sprintf("t=%-10.4f xi=%-10.5f KE=%-10.5f ring=%-10.5f step %d/%d",
		state.Time, state.Xi, ke, re, m.steps, m.cfg.Steps)

	switch {
	case m.done:
		return green.Render(line + "  done")
	case m.paused:
		return yellow.Render(line + "  paused")
	default:
		return line
	}
}
