package report

import (
	"bytes"
	"text/template"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/hideout/internal/embeddata"
	"github.com/vinser/hideout/internal/render"
	"github.com/vinser/hideout/internal/score"
)

// Data feeds the report template.
type Data struct {
	Name      string
	Algorithm string
	RunID     string
	Elapsed   time.Duration
	Report    score.Report
}

// Markdown renders d through the embedded report template.
func Markdown(d Data) (string, error) {
	src, err := embeddata.ReadReportTemplate()
	if err != nil {
		return "", err
	}
	tmpl, err := template.New("report").Parse(string(src))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Glamour styles markdown for the terminal, falling back to the raw text.
func Glamour(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("pink"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	str, err := r.Render(content)
	if err != nil {
		return content
	}
	return str
}

type Model struct {
	width       int
	height      int
	startHeight int
	termWidth   int
	termHeight  int

	viewport viewport.Model
}

// RestartMsg asks the app to run the scenario again.
type RestartMsg struct{}

func restartCmd() tea.Cmd {
	return func() tea.Msg {
		return RestartMsg{}
	}
}

func New(d Data, width, height int) Model {
	if width < lipgloss.Width(footer) {
		width = lipgloss.Width(footer)
	}
	md, err := Markdown(d)
	if err != nil {
		md = "# Report unavailable\n\n" + err.Error()
	}

	vp := viewport.New(width, height)
	vp.Style = lipgloss.NewStyle()
	const glamourGutter = 2
	vp.SetContent(Glamour(md, width-vp.Style.GetHorizontalFrameSize()-glamourGutter))

	return Model{
		width:       width,
		height:      height,
		startHeight: height,

		viewport: vp,
	}
}

func (m *Model) SetSize(width, height int) {
	m.termWidth = width
	m.termHeight = height
	if m.startHeight > m.termHeight-5 {
		m.height = m.termHeight
		m.viewport.Height = m.termHeight - 5
	} else {
		m.height = m.startHeight
		m.viewport.Height = m.startHeight
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r", "enter":
			return m, restartCmd()
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

const footer = "↑ ↓ scroll, r rerun, q quit"

func (m Model) View() string {
	return render.Page("Report", m.viewport.View(), footer, m.width, m.height, m.termWidth, m.termHeight)
}
