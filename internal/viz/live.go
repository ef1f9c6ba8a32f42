package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/edyn/internal/engine"
	"github.com/san-kum/edyn/internal/metrics"
	"github.com/san-kum/edyn/internal/physics"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	maxTrailPoints  = 500

	// Increments applied per keypress between engine runs, never during one.
	eAdjust = 1e4  // V/m
	bAdjust = 0.01 // T
	vAdjust = 1e4  // m/s
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model owns the interactive session: the engine, the mutable field handles,
// and the caller's particles. Field and velocity tuning happens strictly
// between Run calls, through the same handles the engine reads each step.
type Model struct {
	eng      *engine.Engine
	electric *physics.UniformElectricField
	magnetic *physics.UniformMagneticField
	parts    []*physics.Particle

	dt        float64
	frameTime float64
	t         float64

	initialE   physics.Vector2
	initialB   physics.Vector3
	initialPos []physics.Vector2
	initialVel []physics.Vector2

	canvas        *Canvas
	trails        [][]physics.Vector2 // keyed by particle index
	energyHistory []float64
	halfExtent    float64 // world meters mapped to half the canvas

	running  bool
	showHelp bool
	err      error
}

// NewModel snapshots initial conditions for reset and sizes the view to the
// particles' expected orbit scale.
func NewModel(e *physics.UniformElectricField, b *physics.UniformMagneticField, parts []*physics.Particle, dt, frameTime float64) Model {
	initialPos := make([]physics.Vector2, len(parts))
	initialVel := make([]physics.Vector2, len(parts))
	trails := make([][]physics.Vector2, len(parts))
	for i, p := range parts {
		initialPos[i] = p.Position
		initialVel[i] = p.Velocity
		trails[i] = make([]physics.Vector2, 0, maxTrailPoints)
	}

	return Model{
		eng:           engine.New(e, b),
		electric:      e,
		magnetic:      b,
		parts:         parts,
		dt:            dt,
		frameTime:     frameTime,
		initialE:      e.Field,
		initialB:      b.Field,
		initialPos:    initialPos,
		initialVel:    initialVel,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		trails:        trails,
		energyHistory: make([]float64, 0, historyCapacity),
		halfExtent:    1e-5,
		running:       true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
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
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		case "up":
			m.electric.Field = m.electric.Field.Add(physics.Vector2{Y: eAdjust})
		case "down":
			m.electric.Field = m.electric.Field.Add(physics.Vector2{Y: -eAdjust})
		case "right":
			m.electric.Field = m.electric.Field.Add(physics.Vector2{X: eAdjust})
		case "left":
			m.electric.Field = m.electric.Field.Add(physics.Vector2{X: -eAdjust})
		case "+", "=":
			m.magnetic.Field = m.magnetic.Field.Add(physics.Vector3{Z: bAdjust})
		case "-", "_":
			m.magnetic.Field = m.magnetic.Field.Add(physics.Vector3{Z: -bAdjust})
		case "w":
			m.adjustVelocities(physics.Vector2{Y: vAdjust})
		case "s":
			m.adjustVelocities(physics.Vector2{Y: -vAdjust})
		case "d":
			m.adjustVelocities(physics.Vector2{X: vAdjust})
		case "a":
			m.adjustVelocities(physics.Vector2{X: -vAdjust})
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjustVelocities(delta physics.Vector2) {
	for _, p := range m.parts {
		p.AdjustVelocity(delta)
	}
}

// step advances the physics by one rendered frame's worth of simulated time.
func (m *Model) step() {
	cfg := engine.Config{Dt: m.dt, Duration: m.frameTime}
	res, err := m.eng.Run(m.parts, cfg, m.t)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.t = res.FinalStates[0].Time

	for i, p := range m.parts {
		m.trails[i] = append(m.trails[i], p.Position)
		if len(m.trails[i]) > maxTrailPoints {
			m.trails[i] = m.trails[i][1:]
		}
	}

	energy := 0.0
	for _, p := range m.parts {
		energy += metrics.KineticEnergy(p.Mass, p.Velocity)
	}
	m.energyHistory = append(m.energyHistory, energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// reset restores initial fields and kinematics and clears trails; the engine
// itself has no reset operation.
func (m *Model) reset() {
	m.t = 0
	m.err = nil
	m.electric.Field = m.initialE
	m.magnetic.Field = m.initialB
	for i, p := range m.parts {
		p.Position = m.initialPos[i]
		p.Velocity = m.initialVel[i]
		m.trails[i] = m.trails[i][:0]
	}
	m.energyHistory = m.energyHistory[:0]
	m.halfExtent = 1e-5
}

// project maps world meters to canvas sub-pixels, growing the view when a
// particle leaves it. Screen y points down, world y up.
func (m *Model) project(pos physics.Vector2) (int, int) {
	if r := pos.Magnitude(); r > m.halfExtent*0.95 {
		m.halfExtent = r * 1.2
	}
	cw, ch := float64(canvasWidth*2), float64(canvasHeight*4)
	px := cw/2 + pos.X/m.halfExtent*(cw/2-1)
	py := ch/2 - pos.Y/m.halfExtent*(ch/2-1)
	return int(px), int(py)
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, trail := range m.trails {
		for k := 1; k < len(trail); k++ {
			x0, y0 := m.project(trail[k-1])
			x1, y1 := m.project(trail[k])
			m.canvas.DrawLine(x0, y0, x1, y1)
		}
	}
	for _, p := range m.parts {
		x, y := m.project(p.Position)
		m.canvas.Set(x, y)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("ELECTRON DYNAMICS") + "\n")
	status := "RUNNING"
	if m.err != nil {
		status = "ERROR: " + m.err.Error()
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Kinetic energy (J)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3e s", m.t)) + "\n")
	s.WriteString(labelStyle.Render("E") + valueStyle.Render(fmt.Sprintf("(%.2e, %.2e) V/m", m.electric.Field.X, m.electric.Field.Y)) + "\n")
	s.WriteString(labelStyle.Render("Bz") + valueStyle.Render(fmt.Sprintf("%.3f T", m.magnetic.Field.Z)) + "\n")
	for i, p := range m.parts {
		s.WriteString(labelStyle.Render(fmt.Sprintf("v[%d]", i)) + valueStyle.Render(fmt.Sprintf("%.3e m/s", p.Velocity.Magnitude())) + "\n")
	}

	s.WriteString(helpStyle.Render("\n──────────────────────\nSP:Pause R:Reset Q:Quit\nArrows:E  +/-:Bz  WASD:v\n?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space     - Pause/Resume            ║
║  R         - Reset fields+particles  ║
║  Q         - Quit                    ║
║  Arrows    - Nudge E field (V/m)     ║
║  + / -     - Nudge Bz (T)            ║
║  W/A/S/D   - Nudge velocities (m/s)  ║
║  ?         - Toggle this help        ║
╚══════════════════════════════════════╝`

// Run starts the interactive live view and blocks until it exits.
func Run(e *physics.UniformElectricField, b *physics.UniformMagneticField, parts []*physics.Particle, dt, frameTime float64) error {
	p := tea.NewProgram(NewModel(e, b, parts, dt, frameTime), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
