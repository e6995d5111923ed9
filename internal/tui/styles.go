package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arcanaland/patience/internal/card"
)

var (
	Muted   = lipgloss.Color("#5c6370")
	Accent  = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
	Danger  = lipgloss.Color("#e53935")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	headerStyle = lipgloss.NewStyle().Bold(true).Width(pileWidth)
	cursorStyle = headerStyle.Underline(true).Foreground(Accent)
	backStyle   = lipgloss.NewStyle().Foreground(Muted)
	emptyStyle  = lipgloss.NewStyle().Foreground(Muted)
	flashStyle  = lipgloss.NewStyle().Foreground(Warning)
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	lostStyle   = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	statusStyle = lipgloss.NewStyle().Foreground(Muted)
)

const pileWidth = 8

// cardStyle draws a face-up card in its category colour
func cardStyle(c card.Card) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Category.Color()))
}
