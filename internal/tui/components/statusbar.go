package components

import (
	"nathanbeddoewebdev/aznet/internal/tui/styles"
	"nathanbeddoewebdev/aznet/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders a one-line status between the content and footer.
// Service error messages can run long, so the message is clipped to the
// width rather than allowed to wrap and push the footer down.
func StatusBar(width int, message string, isError bool) string {
	if message == "" {
		return ""
	}

	style := styles.MutedText
	if isError {
		style = styles.ErrorText
	}

	if avail := width - 4; avail > 3 {
		message = util.Truncate(message, avail)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(message))
}
