package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/hideout/internal/style"
)

// Page frames content between a ruled title and a footer, centring the
// content block vertically in height rows. With a known terminal size the
// whole frame is centred on screen. Content style is left intact.
func Page(title, content, footer string, width, height, termWidth, termHeight int) string {
	rule := style.TopPattern.Render(strings.Repeat("─", width))
	head := style.Title.Render(title)
	foot := style.Footer.Render(footer)

	rest := height - lipgloss.Height(rule) - lipgloss.Height(head) - lipgloss.Height(foot)
	if rest < lipgloss.Height(content) {
		rest = lipgloss.Height(content)
	}
	body := lipgloss.PlaceVertical(rest, lipgloss.Center, content)

	view := lipgloss.JoinVertical(lipgloss.Left, rule, head, body, foot)
	if termWidth <= 0 || termHeight <= 0 {
		return view
	}
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, view)
}
