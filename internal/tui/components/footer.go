package components

import (
	"strings"

	"nathanbeddoewebdev/aznet/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one key hint shown in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the key hints at the bottom of the screen. Hints that
// do not fit are dropped from the right, so a narrow terminal keeps the
// leading bindings on one line instead of wrapping the bar.
func Footer(width int, bindings []KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	sep := styles.KeySepStyle.Render("  ")
	sepWidth := lipgloss.Width(sep)
	avail := width - 4

	var parts []string
	used := 0
	for _, b := range bindings {
		part := styles.FormatKeyBinding(b.Key, b.Desc)
		w := lipgloss.Width(part)
		if len(parts) > 0 {
			w += sepWidth
		}
		if used+w > avail && len(parts) > 0 {
			break
		}
		parts = append(parts, part)
		used += w
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(strings.Join(parts, sep))
}
