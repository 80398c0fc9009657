// Package ui animates cars crossing the roundabout in the terminal.
package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/roundabout-sim/roundabout-sim/sim"
	"github.com/roundabout-sim/roundabout-sim/sim/trajectory"
)

// Layout constants
const (
	canvasRows   = 23
	entryOffset  = 20 // entry labels sit this far outside the ring
	exitOffset   = 40 // exit labels sit further out than entries
	canvasMargin = 10
)

// Config holds everything the animation needs.
type Config struct {
	Input         sim.QueueingInput
	Cars          int
	FrameInterval time.Duration // time per trajectory step
	CarDelay      time.Duration // stagger between cars
	Geometry      trajectory.Geometry
}

// tickMsg advances the animation by one frame.
type tickMsg time.Time

type car struct {
	startFrame int
	pos        int // index into Model.path, -1 before entering
	done       bool
}

// Model is the bubbletea model for the roundabout animation.
type Model struct {
	cfg    Config
	result sim.QueueingResult
	path   []trajectory.Position
	cars   []car

	frame   int
	paused  bool
	elapsed time.Duration
	total   time.Duration
}

// NewModel computes the metrics and trajectory up front so that invalid
// input fails before the terminal is taken over.
func NewModel(cfg Config) (*Model, error) {
	if cfg.Cars < 1 {
		return nil, fmt.Errorf("need at least one car, got %d", cfg.Cars)
	}
	if cfg.FrameInterval <= 0 {
		return nil, fmt.Errorf("frame interval must be positive, got %v", cfg.FrameInterval)
	}
	res, err := sim.ComputeMetrics(cfg.Input)
	if err != nil {
		return nil, err
	}
	tr, err := trajectory.New(cfg.Input.EntryID, cfg.Input.ExitID, cfg.Geometry)
	if err != nil {
		return nil, err
	}

	delayFrames := int(cfg.CarDelay / cfg.FrameInterval)
	cars := make([]car, cfg.Cars)
	for i := range cars {
		cars[i] = car{startFrame: i * delayFrames, pos: -1}
	}
	return &Model{
		cfg:    cfg,
		result: res,
		path:   slices.Collect(tr.All()),
		cars:   cars,
		total:  time.Duration(res.TotalTimeInSystem * float64(time.Second)),
	}, nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Paused reports whether the animation is frozen.
func (m *Model) Paused() bool { return m.paused }

// Elapsed is the stopwatch reading, capped at the total time in system.
func (m *Model) Elapsed() time.Duration { return min(m.elapsed, m.total) }

// Finished reports whether every car has left and the stopwatch has run out.
func (m *Model) Finished() bool {
	for _, c := range m.cars {
		if !c.done {
			return false
		}
	}
	return m.elapsed >= m.total
}

// advance moves the scene forward one frame.
func (m *Model) advance() {
	for i := range m.cars {
		c := &m.cars[i]
		if c.done || m.frame < c.startFrame {
			continue
		}
		c.pos++
		if c.pos >= len(m.path) {
			c.done = true
			logrus.Debugf("car %d left through exit %d at frame %d", i+1, m.cfg.Input.ExitID, m.frame)
		}
	}
	m.frame++
	m.elapsed += m.cfg.FrameInterval
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
		case "r":
			m.paused = false
		}
		return m, nil

	case tickMsg:
		if !m.paused {
			m.advance()
		}
		if m.Finished() {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) scene() string {
	g := m.cfg.Geometry
	c := newCanvas(canvasRows, g.Radius+exitOffset+canvasMargin)
	c.ring(g.Radius)
	for id := 1; id <= sim.NumAccesses; id++ {
		a, _ := sim.EntryAngle(id)
		p := trajectory.Position{Angle: a, Radius: g.Radius + entryOffset}
		c.label(p.X(), p.Y(), fmt.Sprintf("E%d", id), cellEntry)

		a, _ = sim.ExitAngle(id)
		p = trajectory.Position{Angle: a, Radius: g.Radius + exitOffset}
		c.label(p.X(), p.Y(), fmt.Sprintf("S%d", id), cellExit)
	}
	for _, cr := range m.cars {
		if cr.done || cr.pos < 0 {
			continue
		}
		p := m.path[cr.pos]
		c.set(p.X(), p.Y(), '●', cellCar)
	}
	return c.String()
}

func (m *Model) status() string {
	var b strings.Builder
	b.WriteString(m.result.Summary())
	fmt.Fprintf(&b, "Stopwatch: %.2f s", m.Elapsed().Seconds())
	if m.paused {
		b.WriteString("  " + pausedStyle.Render("PAUSED"))
	}
	return b.String()
}

// View implements tea.Model
func (m *Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("M/M/4 roundabout: entry %d → exit %d, %d car(s)",
		m.cfg.Input.EntryID, m.cfg.Input.ExitID, len(m.cars)))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.scene()),
		panelStyle.Render(m.status()),
	)
	help := helpStyle.Render("p/space: pause  r: resume  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

// Run starts the animation and blocks until the user quits.
func Run(cfg Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	logrus.Infof("Animating %d car(s), %d steps each", cfg.Cars, len(m.path))
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
