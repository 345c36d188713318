package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/ringfield/internal/field"
	"github.com/san-kum/ringfield/internal/geom"
	"github.com/san-kum/ringfield/internal/probe"
)

const (
	canvasW         = 72
	canvasH         = 26
	historyCapacity = 400
)

type TickMsg time.Time

// Model drives the live view: a probe falling through the fractured ring,
// drawn top-down in the ring plane, with a gravity-magnitude sparkline.
type Model struct {
	coord   *field.Coordinator
	integ   probe.Integrator
	state   probe.State
	initial probe.State
	t, dt   float64

	scale    float64 // world units per canvas cell
	canvas   *Canvas
	trail    []geom.Vec3
	gHistory []float64
	sample   field.Sample
	running  bool
	title    string
}

func NewModel(coord *field.Coordinator, integ probe.Integrator, start probe.State, dt float64, title string) Model {
	extent := 1.0
	for _, seg := range coord.Segments() {
		reach := seg.Center.Length() + seg.RingRadius + seg.TubeRadius + seg.InfluenceRadius
		if reach > extent {
			extent = reach
		}
	}

	return Model{
		coord:    coord,
		integ:    integ,
		state:    start,
		initial:  start,
		dt:       dt,
		scale:    2.2 * extent / float64(canvasW),
		canvas:   NewCanvas(canvasW, canvasH),
		trail:    make([]geom.Vec3, 0, historyCapacity),
		gHistory: make([]float64, 0, historyCapacity),
		running:  true,
		title:    title,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial
			m.t = 0
			m.trail = m.trail[:0]
			m.gHistory = m.gHistory[:0]
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	m.state = m.integ.Step(m.coord, m.state, m.dt)
	m.coord.Update(m.dt)
	m.t += m.dt
	m.sample = m.coord.GravityAt(m.state.Position)

	m.trail = append(m.trail, m.state.Position)
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}
	m.gHistory = append(m.gHistory, m.sample.Acceleration.Length())
	if len(m.gHistory) > historyCapacity {
		m.gHistory = m.gHistory[1:]
	}
}

// toCell maps a world point onto the canvas, ring plane (x,z) top-down.
func (m *Model) toCell(p geom.Vec3) (int, int) {
	x := canvasW/2 + int(p.X/m.scale)
	// Terminal cells are twice as tall as wide.
	y := canvasH/2 - int(p.Z/(m.scale*2))
	return x, y
}

func (m *Model) draw() string {
	m.canvas.Clear()

	for _, seg := range m.coord.Segments() {
		m.drawSegment(seg)
	}
	for _, p := range m.trail {
		x, y := m.toCell(p)
		m.canvas.Set(x, y, '·')
	}
	x, y := m.toCell(m.state.Position)
	m.canvas.Set(x, y, '@')

	return m.canvas.String()
}

// drawSegment traces the fragment's centerline arc through its current
// orientation.
func (m *Model) drawSegment(seg *field.Segment) {
	span := seg.ArcEnd - seg.ArcStart
	if span <= 0 {
		span += 2 * math.Pi
	}
	steps := int(span/0.02) + 1
	q := seg.Quaternion()

	for i := 0; i <= steps; i++ {
		angle := seg.ArcStart + span*float64(i)/float64(steps)
		sin, cos := math.Sincos(angle)
		local := geom.Vec3{X: cos * seg.RingRadius, Z: -sin * seg.RingRadius}
		world := seg.Center.Add(q.Rotate(local))
		x, y := m.toCell(world)
		m.canvas.Set(x, y, '█')
	}
}

func (m Model) View() string {
	status := statusRunning.Render("running")
	if !m.running {
		status = statusPaused.Render("paused")
	}

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	dominant := m.sample.Dominant
	if dominant == "" {
		dominant = "-"
	}
	surface := "-"
	if !math.IsInf(m.sample.DistanceFromSurface, 1) {
		surface = fmt.Sprintf("%.1f", m.sample.DistanceFromSurface)
	}

	stats := strings.Join([]string{
		headerStyle.Render(m.title) + "  " + status,
		"",
		row("time", fmt.Sprintf("%.2f s", m.t)),
		row("position", fmt.Sprintf("%.0f %.0f %.0f", m.state.Position.X, m.state.Position.Y, m.state.Position.Z)),
		row("speed", fmt.Sprintf("%.2f", m.state.Velocity.Length())),
		row("|g|", fmt.Sprintf("%.3f", m.sample.Acceleration.Length())),
		row("influence", fmt.Sprintf("%.3f", m.sample.Influence)),
		row("surface", surface),
		row("dominant", dominant),
		row("segments", fmt.Sprintf("%d", m.coord.Count())),
	}, "\n")

	var graph string
	if len(m.gHistory) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.gHistory,
			asciigraph.Height(6),
			asciigraph.Width(canvasW),
			asciigraph.Caption("|g| over time"),
		))
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.draw()),
		statsStyle.Render(stats),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		main,
		graph,
		helpStyle.Render("space pause · r reset · q quit"),
	)
}
