// Package components provides reusable Bubbletea UI building blocks for
// the aznet TUI. These are render-only helpers (not tea.Model) used by
// the main TUI models to compose views.
package components

import (
	"strings"

	"nathanbeddoewebdev/aznet/internal/tui/styles"
	"nathanbeddoewebdev/aznet/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────┐
//	│  aznet > dns > example.com    Azure DNS  │
//	└──────────────────────────────────────────┘
//
// Zone names can be long, so the breadcrumb is clipped to the width and
// the right-hand service label is dropped before anything on the left.
func Header(width int, breadcrumb string, service string) string {
	if width < 10 {
		return ""
	}

	innerWidth := width - 4

	left := styles.Title.Foreground(styles.Blue).Render("aznet")
	if breadcrumb != "" {
		sep := styles.MutedText.Render(" > ")
		avail := innerWidth - lipgloss.Width(left) - lipgloss.Width(sep)
		left += sep + styles.Title.Render(util.Truncate(breadcrumb, max(avail, 1)))
	}

	right := ""
	if service != "" {
		right = styles.Subtitle.Render(service)
	}

	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = max(innerWidth-lipgloss.Width(left), 1)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(left + strings.Repeat(" ", gap) + right)
}
