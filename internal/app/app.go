package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/hideout/internal/logger"
	"github.com/vinser/hideout/internal/model/brief"
	"github.com/vinser/hideout/internal/model/report"
	"github.com/vinser/hideout/internal/model/watch"
	"github.com/vinser/hideout/internal/scenario"
	"github.com/vinser/hideout/internal/sim"
	"github.com/vinser/hideout/internal/sound"
	"github.com/vinser/hideout/internal/state"
	"github.com/vinser/hideout/internal/style"
)

type status uint

const (
	statusBriefing status = iota
	statusWatching
	statusReport
	statusFailed
)

type Model struct {
	status   status
	state    *state.State
	scenario *scenario.Scenario
	sound    *sound.Manager
	runner   *sim.Runner
	err      error
	// models
	brief  brief.Model
	watch  watch.Model
	report report.Model
	// terminal size cache
	termWidth  int
	termHeight int
}

// New prepares the first run of sc. sm may be nil when sound is off.
func New(st *state.State, sc *scenario.Scenario, sm *sound.Manager) Model {
	m := Model{
		state:    st,
		scenario: sc,
		sound:    sm,
	}
	m.startRun()
	return m
}

func (m *Model) startRun() {
	r, err := sim.New(m.scenario)
	if err != nil {
		m.status = statusFailed
		m.err = err
		logger.Log.WithError(err).Error("Failed to start run.")
		return
	}
	m.runner = r
	m.watch = watch.New(r, m.sound)
	m.brief = brief.New(r, r.Floor.Width()*2, r.Floor.Height()+4)
	m.brief.SetSize(m.termWidth, m.termHeight)
	m.status = statusBriefing
	m.state.Runs++
	m.saveState()
}

func (m *Model) saveState() {
	if err := m.state.Save(); err != nil {
		logger.Log.WithError(err).Warn("Failed to save state.")
	}
}

func (m Model) Init() tea.Cmd {
	if m.status == statusBriefing {
		return m.brief.Init()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "m":
			if m.sound != nil {
				if m.sound.Muted() {
					m.sound.Unmute()
				} else {
					m.sound.Mute()
				}
				m.state.Mute = m.sound.Muted()
				m.saveState()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		switch m.status {
		case statusBriefing:
			m.brief.SetSize(msg.Width, msg.Height)
		case statusReport:
			m.report.SetSize(msg.Width, msg.Height)
		}
		return m, tea.ClearScreen
	}

	switch m.status {
	case statusBriefing:
		switch msg.(type) {
		case brief.TimedoutMsg:
			m.status = statusWatching
			return m, tea.Batch(tea.ClearScreen, m.watch.Init())
		default:
			m.brief, cmd = m.brief.Update(msg)
		}
	case statusWatching:
		switch msg := msg.(type) {
		case watch.FinishedMsg:
			m.sound.Play(sound.END)
			m.status = statusReport
			m.report = report.New(report.Data{
				Name:      m.runner.Name,
				Algorithm: m.runner.Engine.Config().Algorithm.String(),
				RunID:     m.runner.ID,
				Elapsed:   msg.Elapsed.Truncate(time.Millisecond),
				Report:    msg.Report,
			}, m.runner.Floor.Width()*2, m.runner.Floor.Height())
			m.report.SetSize(m.termWidth, m.termHeight)
			return m, tea.ClearScreen
		default:
			m.watch, cmd = m.watch.Update(msg)
		}
	case statusReport:
		switch msg.(type) {
		case report.RestartMsg:
			m.startRun()
			return m, tea.Batch(tea.ClearScreen, m.Init())
		default:
			m.report, cmd = m.report.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) View() string {
	switch m.status {
	case statusBriefing:
		return m.brief.View()
	case statusWatching:
		return m.watch.View()
	case statusReport:
		return m.report.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		style.Error.Render("Error: "+m.err.Error()),
		"q quit",
	)
}
