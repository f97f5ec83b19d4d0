package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Board
	Wall     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	Agent    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")) // Bright yellow
	Trail    = lipgloss.NewStyle().Foreground(lipgloss.Color("136"))            // Dim yellow
	Observer = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))   // Bright red
	Waypoint = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))            // Pinkish-reddish purple

	// Status line
	Hidden  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")) // Green
	Spotted = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))  // Bright red
	Paused  = lipgloss.NewStyle().Foreground(lipgloss.Color("228"))
	Header  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	Error   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	// Page styles
	TopPattern = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))            // Pinkish-reddish purple
	Title      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228")) // Bright yellow
	Footer     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type RGB struct {
	R int
	G int
	B int
}

var RGBColor = map[string]RGB{
	"blue": {0, 0, 255},
	"red":  {255, 0, 0},
}

// GenerateHexColor generates hexadcimal string for a given RGB values. r, g, b sould be in the range 0-255
// Format: #RRGGBB
func GenerateHexColor(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Heat returns a background style for an isovist count: dark blue for closed
// corners up to dim red for wide open space.
func Heat(value, max int) lipgloss.Style {
	if max <= 0 {
		return lipgloss.NewStyle()
	}
	f := float64(value) / float64(max)
	if f > 1 {
		f = 1
	}
	cold, hot := RGBColor["blue"], RGBColor["red"]
	mix := func(a, b int) int {
		return int((float64(a)*(1-f) + float64(b)*f) * 0.35)
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(GenerateHexColor(mix(cold.R, hot.R), mix(cold.G, hot.G), mix(cold.B, hot.B))))
}
