package commands

import "github.com/charmbracelet/lipgloss"

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")).Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	emphStyle    = lipgloss.NewStyle().Underline(true)
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
)

// pad fills s with trailing spaces up to width cells.
func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
