package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/hideout/internal/dweller"
	"github.com/vinser/hideout/internal/hiding"
	"github.com/vinser/hideout/internal/score"
	"github.com/vinser/hideout/internal/sim"
	"github.com/vinser/hideout/internal/sound"
	"github.com/vinser/hideout/internal/style"
)

const (
	frameInterval = 50 * time.Millisecond
	maxSpeedup    = 16
)

// TickMsg advances the simulation by one frame.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// FinishedMsg is sent once the observer has walked its whole path.
type FinishedMsg struct {
	Report  score.Report
	Elapsed time.Duration
}

func finishedCmd(r score.Report, elapsed time.Duration) tea.Cmd {
	return func() tea.Msg {
		return FinishedMsg{Report: r, Elapsed: elapsed}
	}
}

type keyMap struct {
	Pause  key.Binding
	Heat   key.Binding
	Faster key.Binding
	Slower key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Heat, k.Faster, k.Slower, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Pause:  key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
	Heat:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "isovist heat")),
	Faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
	Slower: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model shows a run as it happens.
type Model struct {
	runner   *sim.Runner
	sound    *sound.Manager
	speedup  int
	paused   bool
	heat     bool
	progress progress.Model
	help     help.Model
	lastSeen hiding.Outcome
	err      error
}

// New returns a watch model for r. sm may be nil.
func New(r *sim.Runner, sm *sound.Manager) Model {
	return Model{
		runner:   r,
		sound:    sm,
		speedup:  1,
		heat:     r.Grid.Built(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(r.Floor.Width()*2)),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, keys.Heat):
			m.heat = !m.heat && m.runner.Grid.Built()
		case key.Matches(msg, keys.Faster):
			if m.speedup < maxSpeedup {
				m.speedup *= 2
			}
		case key.Matches(msg, keys.Slower):
			if m.speedup > 1 {
				m.speedup /= 2
			}
		}
		return m, nil
	case TickMsg:
		if m.paused || m.err != nil {
			return m, tick()
		}
		for i := 0; i < m.speedup && !m.runner.Done(); i++ {
			d, err := m.runner.Step(frameInterval)
			if err != nil {
				m.err = err
				return m, tick()
			}
			m.alert(d)
		}
		if rep, ok := m.runner.Report(); ok {
			return m, finishedCmd(rep, m.runner.Clock())
		}
		return m, tick()
	}
	return m, nil
}

// alert plays a tone when the outcome flips.
func (m *Model) alert(d hiding.Decision) {
	if !d.Ran || d.Outcome == hiding.Uncounted || d.Outcome == m.lastSeen {
		return
	}
	m.lastSeen = d.Outcome
	switch d.Outcome {
	case hiding.Spotted:
		m.sound.Play(sound.SPOTTED)
	case hiding.Hidden:
		m.sound.Play(sound.HIDDEN)
	}
}

func (m Model) View() string {
	r := m.runner
	stats := r.Engine.Stats()

	status := style.Hidden.Render("hidden")
	if r.Last().Outcome == hiding.Spotted {
		status = style.Spotted.Render("SPOTTED")
	}
	if m.paused {
		status += " " + style.Paused.Render("(paused)")
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		style.Header.Render(fmt.Sprintf("%s · %s", r.Name, r.Engine.Config().Algorithm)),
		fmt.Sprintf("t=%-8s x%-2d spotted %d  hidden %d  moved %d  %s",
			r.Clock().Truncate(100*time.Millisecond), m.speedup,
			stats.Spotted(), stats.Hidden(), stats.Moved(), status),
	)

	parts := []string{header, Board(r, m.heat), m.progress.ViewAs(r.Observer.Progress())}
	if m.err != nil {
		parts = append(parts, style.Error.Render(m.err.Error()))
	}
	parts = append(parts, m.help.View(keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Board draws the floor top row first, two columns per tile.
func Board(r *sim.Runner, heat bool) string {
	f := r.Floor
	agentX, agentY := r.Agent.Pos().Round()
	prevX, prevY := r.Agent.Prev().Round()
	obsX, obsY := r.Observer.Pos().Round()
	waypoints := make(map[[2]int]bool)
	for _, wp := range r.Observer.Waypoints() {
		x, y := wp.Round()
		waypoints[[2]int{x, y}] = true
	}
	maxVis := 0
	if heat {
		maxVis = r.Grid.MaxVisibility()
	}

	var sb strings.Builder
	for y := f.Height() - 1; y >= 0; y-- {
		for x := 0; x < f.Width(); x++ {
			var cell string
			switch {
			case x == obsX && y == obsY:
				cell = style.Observer.Render("Ob")
			case x == agentX && y == agentY:
				cell = style.Agent.Render("Ag")
			case f.IsWall(x, y):
				cell = style.Wall.Render("▒▒")
			case x == prevX && y == prevY:
				cell = style.Trail.Render("··")
			case waypoints[[2]int{x, y}]:
				cell = style.Waypoint.Render("◇ ")
			default:
				cell = "  "
			}
			if heat && !f.IsWall(x, y) {
				cell = heatAt(r, x, y, maxVis).Render(cell)
			}
			sb.WriteString(cell)
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func heatAt(r *sim.Runner, x, y, maxVis int) lipgloss.Style {
	o := r.Grid.Origin()
	i, j := dweller.Position{X: float64(x) - o.X, Y: float64(y) - o.Y}.Round()
	c, ok := r.Grid.Cell(i, j)
	if !ok {
		return lipgloss.NewStyle()
	}
	return style.Heat(c.Visibility, maxVis)
}
