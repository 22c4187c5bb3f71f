// ABOUTME: Compact stat card widget for dashboard displays
// ABOUTME: Combines icon, value, and label in a bordered panel

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/perftrack/perftrack-cli/internal/tui/icons"
)

// StatCardConfig holds configuration for a stat card
type StatCardConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultStatCardConfig returns sensible defaults
func DefaultStatCardConfig() StatCardConfig {
	return StatCardConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"), // Muted gray
		TitleColor:  lipgloss.Color("#3B82F6"), // Blue
		ValueColor:  lipgloss.Color("#F9FAFB"), // Light
	}
}

// StatCard renders a compact metric display with the title in the border
func StatCard(icon icons.Icon, title string, value string, subtitle string, config StatCardConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}

	innerWidth := config.Width - 4

	titleStr := fmt.Sprintf("%s %s", icon.String(), title)
	if len(titleStr) > innerWidth {
		titleStr = titleStr[:innerWidth]
	}

	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-len(titleStr)-1)))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	valueLine := fmt.Sprintf("│  %-*s│", innerWidth, valueStyle.Render(value))

	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	subtitleLine := fmt.Sprintf("│  %-*s│", innerWidth, subtitleStyle.Render(truncate(subtitle, innerWidth)))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))

	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(valueLine),
		borderStyle.Render(subtitleLine),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// CountCard renders a simple count metric (employees, goals, reviews)
func CountCard(icon icons.Icon, title string, count int, label string, config StatCardConfig) string {
	return StatCard(icon, title, fmt.Sprintf("%d", count), label, config)
}

// PercentCard renders a percentage metric with a compact bar underneath
func PercentCard(icon icons.Icon, title string, percent float64, label string, config StatCardConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}

	innerWidth := config.Width - 4
	barWidth := innerWidth - 6

	titleStr := fmt.Sprintf("%s %s", icon.String(), title)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-len(titleStr)-1)))

	color := ProgressColor(percent)
	percentStr := fmt.Sprintf("%3.0f%%", percent)
	valueLine := fmt.Sprintf("│  %s%s│",
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(percentStr),
		strings.Repeat(" ", max(0, innerWidth-len(percentStr))))

	bar := CompactProgressBar(percent, barWidth, color)
	barLine := fmt.Sprintf("│  %s%s│", bar, strings.Repeat(" ", max(0, innerWidth-barWidth)))

	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	labelLine := fmt.Sprintf("│  %-*s│", innerWidth, subtitleStyle.Render(truncate(label, innerWidth)))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))

	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(valueLine),
		borderStyle.Render(barLine),
		borderStyle.Render(labelLine),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// truncate shortens a string to maxLen with ellipsis if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
