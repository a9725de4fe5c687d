package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Title renders view headings.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	// Subtitle renders the line under a heading, typically the zone's
	// resource group.
	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label and Value render the two columns of the detail view.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)
	Value = lipgloss.NewStyle().
		Foreground(White)

	// MutedText renders hints and empty-state placeholders.
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// AccentText marks the element the cursor is on.
	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	// ErrorText renders service errors in the status bar.
	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)
)

// Card wraps a block of content in a rounded border.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(DimGray).
	Padding(1, 2)

// Footer key hints.
var (
	KeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding renders one "key description" pair for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}

// Record set table.
var (
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Gray).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)

	TableSelectedRow = lipgloss.NewStyle().
				Foreground(White).
				Background(DarkBlue).
				Bold(true).
				Padding(0, 1)
)

// RecordType returns the color style for a DNS record type cell.
func RecordType(shortType string) lipgloss.Style {
	switch strings.ToUpper(shortType) {
	case "A", "AAAA":
		return lipgloss.NewStyle().Foreground(Green)
	case "CNAME":
		return lipgloss.NewStyle().Foreground(Yellow)
	case "MX", "SRV":
		return lipgloss.NewStyle().Foreground(Blue)
	case "TXT":
		return MutedText
	}
	return Value
}
