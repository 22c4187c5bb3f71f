// ABOUTME: Progress bar widgets for goal completion displays
// ABOUTME: Colors follow the web client's thresholds (red < 50 <= amber < 80 <= green)

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressHighColor  = lipgloss.Color("#10B981") // Green
	progressMidColor   = lipgloss.Color("#F59E0B") // Amber
	progressLowColor   = lipgloss.Color("#EF4444") // Red
	progressEmptyColor = lipgloss.Color("#374151") // Dark gray
)

// ProgressColor returns the display color for a goal progress percentage
func ProgressColor(percent float64) lipgloss.Color {
	if percent >= 80 {
		return progressHighColor
	}
	if percent >= 50 {
		return progressMidColor
	}
	return progressLowColor
}

// ProgressBar renders a colored bar for a goal's completion percentage
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	filledStyle := lipgloss.NewStyle().Foreground(ProgressColor(percent))
	emptyStyle := lipgloss.NewStyle().Foreground(progressEmptyColor)

	var bar strings.Builder
	bar.WriteString("[")
	bar.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	bar.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel renders the bar followed by the percentage
func ProgressBarWithLabel(percent float64, width int) string {
	label := lipgloss.NewStyle().
		Foreground(ProgressColor(percent)).
		Render(fmt.Sprintf("%3.0f%%", percent))
	return fmt.Sprintf("%s %s", ProgressBar(percent, width), label)
}

// CompactProgressBar renders a minimal bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	empty := width - filled

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(progressEmptyColor).Render(strings.Repeat("░", empty))
}
