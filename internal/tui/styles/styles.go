// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, borders, and text styles used across screens

package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Accent    = lipgloss.Color("#8B5CF6") // Purple for highlights
	Surface   = lipgloss.Color("#374151") // Elevated surface background

	// Goal status colors, matching the web client's badge palette
	StatusDraftColor     = lipgloss.Color("#9CA3AF") // Gray
	StatusActiveColor    = lipgloss.Color("#3B82F6") // Blue
	StatusCompletedColor = lipgloss.Color("#10B981") // Green
	StatusCancelledColor = lipgloss.Color("#EF4444") // Red

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Key style for keyboard shortcuts
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	// Error line shown under a screen after a failed request
	ErrorLine = lipgloss.NewStyle().
			Foreground(Danger)

	// Notice line for transient success messages
	NoticeLine = lipgloss.NewStyle().
			Foreground(Secondary)
)

// StatusColor maps a goal status to its display color
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "active":
		return StatusActiveColor
	case "completed":
		return StatusCompletedColor
	case "cancelled":
		return StatusCancelledColor
	default:
		return StatusDraftColor
	}
}
