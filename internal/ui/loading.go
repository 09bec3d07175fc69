package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// spinnerFrames animates the loading screen off the tick counter.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// renderLoading draws the registry build overlay: a spinner, the progress
// bar and the current status message.
func (m Model) renderLoading() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("SKYWATCH"))
	b.WriteString("\n\n")

	frame := spinnerFrames[m.tickCount%len(spinnerFrames)]
	b.WriteString(m.theme.Accent.Render(frame + " " + m.initMessage))
	b.WriteString("\n\n")

	b.WriteString(m.initBar.ViewAs(m.initProgress))
	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render(fmt.Sprintf("%.0f%%", m.initProgress*100)))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Muted.Render("press q to quit"))

	content := m.theme.Border.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
