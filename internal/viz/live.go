// Package viz renders the simulation in the terminal. It sits strictly on
// the collaborator side of the core's boundary: it advances the driver one
// frame per tick and reads body state through accessors, nothing more.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/CDE90/physics-simulation/internal/sim"
	"github.com/CDE90/physics-simulation/internal/telemetry"
)

const (
	canvasWidth     = 72
	canvasHeight    = 22
	trailLength     = 400
	historyCapacity = 120
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).MarginTop(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// ReloadMsg swaps in a freshly built simulator, sent when a watched config
// file changes on disk.
type ReloadMsg struct {
	Sim  *sim.Simulator
	Name string
	FPS  int
}

// Model is the bubbletea model wrapping a running simulator.
type Model struct {
	sim    *sim.Simulator
	name   string
	fps    int
	trails []*telemetry.Trail

	bounds  rect
	running bool
	frame   sim.Frame

	speedHistory []float64
}

type rect struct {
	minX, minY, maxX, maxY float64
}

// NewModel wires trails onto every body and fixes the initial view bounds
// from the starting positions.
func NewModel(s *sim.Simulator, name string, fps int) Model {
	trails := make([]*telemetry.Trail, len(s.Bodies()))
	for i, b := range s.Bodies() {
		trails[i] = telemetry.NewTrail(trailLength)
		trails[i].Attach(b)
	}

	m := Model{
		sim:          s,
		name:         name,
		fps:          fps,
		trails:       trails,
		running:      true,
		speedHistory: make([]float64, 0, historyCapacity),
	}
	m.bounds = m.fitBounds()
	return m
}

func (m Model) fitBounds() rect {
	r := rect{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	for _, b := range m.sim.Bodies() {
		r.minX = math.Min(r.minX, b.X())
		r.minY = math.Min(r.minY, b.Y())
		r.maxX = math.Max(r.maxX, b.X())
		r.maxY = math.Max(r.maxY, b.Y())
	}
	// Pad so orbits have room before the view rescales.
	padX := math.Max(100, (r.maxX-r.minX)*0.6)
	padY := math.Max(100, (r.maxY-r.minY)*0.6)
	return rect{minX: r.minX - padX, minY: r.minY - padY, maxX: r.maxX + padX, maxY: r.maxY + padY}
}

func (m *Model) growBounds() {
	for _, b := range m.sim.Bodies() {
		m.bounds.minX = math.Min(m.bounds.minX, b.X())
		m.bounds.minY = math.Min(m.bounds.minY, b.Y())
		m.bounds.maxX = math.Max(m.bounds.maxX, b.X())
		m.bounds.maxY = math.Max(m.bounds.maxY, b.Y())
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			if !m.running {
				m.step()
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()

	case ReloadMsg:
		fresh := NewModel(msg.Sim, msg.Name, msg.FPS)
		fresh.running = m.running
		return fresh, nil
	}
	return m, nil
}

func (m *Model) step() {
	m.frame = m.sim.StepFrame()
	m.growBounds()

	if len(m.frame.Bodies) > 0 {
		m.speedHistory = append(m.speedHistory, m.frame.Bodies[0].Speed)
		if len(m.speedHistory) > historyCapacity {
			m.speedHistory = m.speedHistory[1:]
		}
	}
}

func (m Model) View() string {
	canvas := NewCanvas(canvasWidth, canvasHeight)
	proj := NewProjection(m.bounds.minX, m.bounds.minY, m.bounds.maxX, m.bounds.maxY, canvasWidth, canvasHeight)

	for _, trail := range m.trails {
		pts := trail.Points()
		for i := 1; i < len(pts); i++ {
			x0, y0 := proj.Dot(pts[i-1].X, pts[i-1].Y)
			x1, y1 := proj.Dot(pts[i].X, pts[i].Y)
			canvas.DrawLine(x0, y0, x1, y1)
		}
	}
	for _, b := range m.sim.Bodies() {
		x, y := proj.Dot(b.X(), b.Y())
		// A small cross makes bodies stand out from trail dots.
		canvas.Set(x, y)
		canvas.Set(x+1, y)
		canvas.Set(x-1, y)
		canvas.Set(x, y+1)
		canvas.Set(x, y-1)
	}

	left := canvasStyle.Render(canvas.String())
	right := statsStyle.Render(m.statsView())

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	help := helpStyle.Render("space pause · s step · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, main, help)
}

func (m Model) statsView() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  t=%.2fs", m.name, m.sim.Time())))
	b.WriteByte('\n')

	for i, bs := range m.frame.Bodies {
		b.WriteString(fmt.Sprintf("\nbody %d\n", i))
		b.WriteString(labelStyle.Render("position") + valueStyle.Render(fmt.Sprintf("(%.1f, %.1f)", bs.X, bs.Y)) + "\n")
		b.WriteString(labelStyle.Render("velocity") + valueStyle.Render(fmt.Sprintf("%.2f @ %.1f°", bs.Speed, bs.Heading)) + "\n")
		b.WriteString(labelStyle.Render("force") + valueStyle.Render(fmt.Sprintf("%.2f", bs.Force)) + "\n")
	}

	if len(m.speedHistory) >= 2 {
		graph := asciigraph.Plot(m.speedHistory,
			asciigraph.Height(6),
			asciigraph.Width(36),
			asciigraph.Caption("body 0 speed"))
		b.WriteString(graphStyle.Render(graph))
	}

	return b.String()
}
