package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, highlights
	ColorHighlight = "205" // Magenta - selected items
	ColorMuted     = "241" // Gray - dimmed text, hints
)

// Styles contains shared style definitions for the footer and pane chrome.
// Pane content colors do not survive compositing (see Composite), so
// styling is applied to text rendered outside the stage.
var Styles = struct {
	Title    lipgloss.Style // Pane titles
	Selected lipgloss.Style // Selected menu items
	Muted    lipgloss.Style // Hints, footer
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}
