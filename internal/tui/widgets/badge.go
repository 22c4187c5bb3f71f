// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for goal, review, and role states

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// GoalStatusBadge renders a badge for a goal status
func GoalStatusBadge(status string) string {
	switch status {
	case "active":
		return Badge(strings.ToUpper(status), StatusInfo)
	case "completed":
		return Badge(strings.ToUpper(status), StatusOK)
	case "cancelled":
		return Badge(strings.ToUpper(status), StatusCritical)
	case "draft":
		return Badge(strings.ToUpper(status), StatusNeutral)
	default:
		return Badge(strings.ToUpper(status), StatusNeutral)
	}
}

// ReviewStatusBadge renders a badge for a review status
func ReviewStatusBadge(status string) string {
	if status == "completed" {
		return Badge(strings.ToUpper(status), StatusOK)
	}
	return Badge(strings.ToUpper(status), StatusWarning)
}

// RoleBadge renders a badge for a user role
func RoleBadge(role string) string {
	switch role {
	case "admin":
		return Badge(strings.ToUpper(role), StatusCritical)
	case "manager":
		return Badge(strings.ToUpper(role), StatusInfo)
	default:
		return Badge(strings.ToUpper(role), StatusNeutral)
	}
}

// ApprovedBadge renders the manager approval marker
func ApprovedBadge(approved bool) string {
	if approved {
		return Badge("APPROVED", StatusOK)
	}
	return Badge("PENDING", StatusWarning)
}
