package viz

import (
	"fmt"
	"math/cmplx"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/icosim/internal/field"
	"github.com/san-kum/icosim/internal/topology"
	"github.com/san-kum/icosim/internal/unified"
)

const (
	barWidth        = 24
	historyCapacity = 600
	tickRate        = time.Second / 30
)

// TickMsg drives the live simulation loop.
type TickMsg time.Time

// LiveModel steps the field engine interactively and renders per-node
// magnitudes grouped by zone.
type LiveModel struct {
	topo    *topology.Topology
	engine  *unified.Engine
	params  unified.Params
	state   *field.State
	initial *field.State
	dt      float64

	running    bool
	stepErrs   int
	energyHist []float64
	fatal      error
}

// NewLive builds an interactive view around an engine and initial state.
func NewLive(topo *topology.Topology, engine *unified.Engine, params unified.Params, x0 *field.State, dt float64) LiveModel {
	return LiveModel{
		topo:       topo,
		engine:     engine,
		params:     params,
		state:      x0.Clone(),
		initial:    x0.Clone(),
		dt:         dt,
		running:    true,
		energyHist: make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.energyHist = m.energyHist[:0]
			m.stepErrs = 0
			m.fatal = nil
			m.running = true
		}
		return m, nil
	case TickMsg:
		if m.running && m.fatal == nil {
			m.step()
		}
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *LiveModel) step() {
	next, nodeErrs, err := m.engine.Step(m.state, m.params, m.state.T, m.dt)
	if err != nil {
		m.fatal = err
		m.running = false
		return
	}
	m.state = next
	m.stepErrs += len(nodeErrs)

	m.energyHist = append(m.energyHist, m.state.Energy())
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}
}

func (m LiveModel) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("ICOSIM LIVE") + "\n")

	status := "RUNNING"
	if m.fatal != nil {
		status = "HALTED: " + m.fatal.Error()
	} else if !m.running {
		status = "PAUSED"
	}
	sb.WriteString(labelStyle.Render("status") + valueStyle.Render(status) + "\n")
	sb.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.4f", m.state.T)) + "\n")
	sb.WriteString(labelStyle.Render("node errors") + valueStyle.Render(fmt.Sprintf("%d", m.stepErrs)) + "\n\n")

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist,
			asciigraph.Height(5), asciigraph.Width(60), asciigraph.Caption("field energy"))
		sb.WriteString(chart + "\n\n")
	}

	peak := 0.0
	for _, a := range m.state.Amp {
		if v := cmplx.Abs(a); v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	for _, n := range m.topo.Nodes() {
		mag := cmplx.Abs(m.state.Amplitude(n.ID))
		filled := int(mag / peak * barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		sb.WriteString(fmt.Sprintf("%s %s %.4f\n",
			ZoneStyle(n.Zone).Render(fmt.Sprintf("%2d %-7s", n.ID, n.Zone)),
			ZoneStyle(n.Zone).Render(bar), mag))
	}

	sb.WriteString(helpStyle.Render("space: pause  r: reset  q: quit"))
	return sb.String()
}
