// Package tui is the interactive terminal front end. Mouse and key input is
// queued as events and handed to the session once per tick.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TFMV/forcegraph/models"
	"github.com/TFMV/forcegraph/render"
	"github.com/TFMV/forcegraph/session"
)

// Screen units covered by one terminal cell
const (
	CellWidth  = 10
	CellHeight = 20
)

// rows reserved below the canvas
const statusLines = 2

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#64748B"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#6366F1"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#10B981"}
	danger    = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#F43F5E"}

	titleStyle  = lipgloss.NewStyle().Foreground(highlight).Bold(true).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(subtle)
	valueStyle  = lipgloss.NewStyle().Foreground(special)
	errorStyle  = lipgloss.NewStyle().Foreground(danger)
	cliqueStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
)

type tickMsg time.Time

// Model drives a session from terminal input
type Model struct {
	session  *session.Session
	interval time.Duration

	pending []models.Event
	mode    models.Mode
	force   bool

	cols, rows int
	lastErr    error
	quitting   bool
}

// NewModel wraps s, ticking tps times per second
func NewModel(s *session.Session, tps int) Model {
	if tps <= 0 {
		tps = 30
	}
	st := s.State()
	m := Model{
		session:  s,
		interval: time.Second / time.Duration(tps),
		mode:     st.Mode,
		force:    st.ForceEnabled,
	}
	m.resize(80, 24)
	return m
}

// resize fits the canvas to a terminal of width x height cells
func (m *Model) resize(width, height int) {
	m.cols = max(width, 1)
	m.rows = max(height-statusLines, 1)
	m.session.SetViewport(models.V(float64(m.cols*CellWidth), float64(m.rows*CellHeight)))
}

// Run starts the program on the alternate screen with mouse tracking
func Run(s *session.Session, tps int) error {
	p := tea.NewProgram(NewModel(s, tps), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update queues input and advances the session on each tick
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "m":
			if m.mode == models.ModeMove {
				m.mode = models.ModeLink
			} else {
				m.mode = models.ModeMove
			}
			m.pending = append(m.pending, models.SetMode(m.mode))
		case "f":
			m.force = !m.force
			m.pending = append(m.pending, models.SetForce(m.force))
		case "n":
			m.pending = append(m.pending, models.CreateVertex())
		case "c":
			m.pending = append(m.pending, models.ComputeClique())
		}

	case tea.MouseMsg:
		m.pending = append(m.pending, models.PointerMove(ScreenPosition(msg.X, msg.Y)))
		switch msg.Action {
		case tea.MouseActionPress:
			switch msg.Button {
			case tea.MouseButtonLeft:
				m.pending = append(m.pending, models.PointerDown(models.ButtonPrimary))
			case tea.MouseButtonRight:
				m.pending = append(m.pending, models.PointerDown(models.ButtonSecondary))
			}
		case tea.MouseActionRelease:
			// many terminals report releases without the button
			if msg.Button == tea.MouseButtonRight {
				m.pending = append(m.pending, models.PointerUp(models.ButtonSecondary))
			} else {
				m.pending = append(m.pending, models.PointerUp(models.ButtonPrimary))
			}
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tickMsg:
		m.lastErr = m.session.Tick(m.pending...)
		m.pending = nil
		return m, m.tick()
	}
	return m, nil
}

// ScreenPosition maps a terminal cell to the screen point at its center
func ScreenPosition(x, y int) models.Vec2 {
	return models.V(float64(x*CellWidth+CellWidth/2), float64(y*CellHeight+CellHeight/2))
}

// View draws the latest snapshot and a status bar
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.session.Snapshot()

	proj := render.CenteredProjection(m.cols, m.rows, CellWidth, CellHeight)
	canvas := render.NewCanvas(m.cols, m.rows)
	canvas.DrawSnapshot(snap, proj, true)
	canvas.DrawPointer(snap.Pointer, proj)

	var b strings.Builder
	b.WriteString(canvas.String())
	b.WriteString(m.status(snap))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("m mode  f force  n vertex  c clique  right-click new vertex  q quit"))
	return b.String()
}

func (m Model) status(snap *models.Snapshot) string {
	force := "off"
	if snap.ForceEnabled {
		force = "on"
	}
	parts := []string{
		titleStyle.Render("forcegraph"),
		field("mode", snap.Mode.String()),
		field("force", force),
		field("vertices", fmt.Sprint(len(snap.Vertices))),
		field("arcs", fmt.Sprint(len(snap.Arcs))),
		field("tick", fmt.Sprint(snap.Tick)),
	}
	if len(snap.Clique) > 0 {
		parts = append(parts, labelStyle.Render("clique ")+cliqueStyle.Render(fmt.Sprint(snap.Clique)))
	}
	if m.lastErr != nil {
		parts = append(parts, errorStyle.Render(m.lastErr.Error()))
	}
	return strings.Join(parts, "  ")
}

func field(label, value string) string {
	return labelStyle.Render(label+" ") + valueStyle.Render(value)
}
