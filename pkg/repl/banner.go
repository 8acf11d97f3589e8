package repl

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#06B6D4")
	colorMuted   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	hintStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// Banner is printed when an interactive session starts.
func Banner(version string) string {
	title := titleStyle.Render("dolphin " + version)
	hint := hintStyle.Render("type help for statements, exit or Ctrl-D to leave")
	return lipgloss.JoinVertical(lipgloss.Left, title, hint)
}
