package brief

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/hideout/internal/render"
	"github.com/vinser/hideout/internal/sim"
	"github.com/vinser/hideout/internal/style"
)

const briefPeriod = 3 * time.Second

// Model announces a run before it starts.
type Model struct {
	width      int
	height     int
	termWidth  int
	termHeight int

	lines []string
	until time.Time
}

// TickMsg is a tick message for periodic updates.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TimedoutMsg ends the briefing.
type TimedoutMsg struct{}

func timedoutCmd() tea.Cmd {
	return func() tea.Msg {
		return TimedoutMsg{}
	}
}

func New(r *sim.Runner, width, height int) Model {
	if width < lipgloss.Width(footer) {
		width = lipgloss.Width(footer)
	}
	cfg := r.Engine.Config()
	lines := []string{
		"",
		fmt.Sprintf("Algorithm:  %s", cfg.Algorithm),
		fmt.Sprintf("Floor:      %dx%d", r.Floor.Width(), r.Floor.Height()),
		fmt.Sprintf("Waypoints:  %d", len(r.Observer.Waypoints())),
		fmt.Sprintf("Agent pace: %.0f%% of observer", cfg.SpeedPercent*100),
	}
	if cfg.Algorithm.UsesGrid() {
		lines = append(lines, fmt.Sprintf("Isovist:    %dx%d, peak %d", r.Grid.Width(), r.Grid.Height(), r.Grid.MaxVisibility()))
	}
	return Model{
		width:  width,
		height: height,

		lines: lines,
		until: time.Now().Add(briefPeriod),
	}
}

func (m *Model) SetSize(width, height int) {
	m.termWidth = width
	m.termHeight = height
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg:
		return m, timedoutCmd()
	case TickMsg:
		if time.Now().After(m.until) {
			return m, timedoutCmd()
		}
		return m, tick()
	}
	return m, nil
}

const footer = "any key to start"

func (m Model) View() string {
	title := ""
	if (time.Now().UnixNano()/int64(time.Millisecond)/500)%2 == 0 {
		title = "Hide!"
	}
	content := style.Header.Render(strings.Join(m.lines, "\n"))
	return render.Page(title, content, footer, m.width, m.height, m.termWidth, m.termHeight)
}
