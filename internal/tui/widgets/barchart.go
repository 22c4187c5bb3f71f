// ABOUTME: Horizontal bar chart widget for distributions and ratings
// ABOUTME: Renders labeled rows scaled to the largest value

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BarRow is one labeled row of a horizontal bar chart
type BarRow struct {
	Label string
	Value float64
	Color lipgloss.Color
}

// BarChart renders rows as horizontal bars scaled so the largest value fills
// barWidth. Labels are right-padded to align the bars.
func BarChart(rows []BarRow, barWidth int, showValue func(float64) string) string {
	if len(rows) == 0 {
		return ""
	}
	if barWidth <= 0 {
		barWidth = 20
	}
	if showValue == nil {
		showValue = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}

	maxVal := rows[0].Value
	labelWidth := len(rows[0].Label)
	for _, r := range rows {
		if r.Value > maxVal {
			maxVal = r.Value
		}
		if len(r.Label) > labelWidth {
			labelWidth = len(r.Label)
		}
	}

	var sb strings.Builder
	for i, r := range rows {
		filled := 0
		if maxVal > 0 {
			filled = int(r.Value / maxVal * float64(barWidth))
		}
		if r.Value > 0 && filled == 0 {
			filled = 1
		}
		if filled > barWidth {
			filled = barWidth
		}

		bar := lipgloss.NewStyle().Foreground(r.Color).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(progressEmptyColor).Render(strings.Repeat("░", barWidth-filled))

		sb.WriteString(fmt.Sprintf("%-*s %s %s", labelWidth, r.Label, bar, showValue(r.Value)))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RatingChart renders 0..5 rating rows scaled against the full 5-point scale
func RatingChart(rows []BarRow, barWidth int) string {
	if len(rows) == 0 {
		return ""
	}
	if barWidth <= 0 {
		barWidth = 20
	}

	labelWidth := 0
	for _, r := range rows {
		if len(r.Label) > labelWidth {
			labelWidth = len(r.Label)
		}
	}

	var sb strings.Builder
	for i, r := range rows {
		v := r.Value
		if v < 0 {
			v = 0
		}
		if v > 5 {
			v = 5
		}
		filled := int(v / 5.0 * float64(barWidth))

		bar := lipgloss.NewStyle().Foreground(r.Color).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(progressEmptyColor).Render(strings.Repeat("░", barWidth-filled))

		sb.WriteString(fmt.Sprintf("%-*s %s %.1f/5", labelWidth, r.Label, bar, r.Value))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a compact trend visualization, most recent value last
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	result := make([]rune, len(values))
	for i, v := range values {
		result[i] = valueToBlock(v, min, max)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}
	return style.Render(string(result))
}

// valueToBlock maps a value to a block character based on its position in the range
func valueToBlock(value, min, max float64) rune {
	if max == min {
		return SparklineBlocks[len(SparklineBlocks)/2]
	}

	normalized := (value - min) / (max - min)
	idx := int(normalized * float64(len(SparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(SparklineBlocks) {
		idx = len(SparklineBlocks) - 1
	}
	return SparklineBlocks[idx]
}
