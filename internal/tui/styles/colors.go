// Package styles holds the palette and lipgloss styles shared by the
// zone browser views.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Grays, brightest to darkest.
	White   = lipgloss.Color("#E2E2E2")
	Gray    = lipgloss.Color("#888888")
	Muted   = lipgloss.Color("#555555")
	DimGray = lipgloss.Color("#444444")

	// Blue is the accent for interactive elements. DarkBlue is its
	// background counterpart for the selected row.
	Blue     = lipgloss.Color("#5FAFFF")
	DarkBlue = lipgloss.Color("#1A2F40")

	// Record-type and outcome colors.
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")
)
