// ABOUTME: Pure display aggregates derived from fetched lists
// ABOUTME: Recomputed per render so they can never desync from the list

package views

import "github.com/perftrack/perftrack-cli/internal/client"

// GoalStatusOrder fixes the display order for status charts.
var GoalStatusOrder = []string{
	client.GoalStatusDraft,
	client.GoalStatusActive,
	client.GoalStatusCompleted,
	client.GoalStatusCancelled,
}

// StatusCount is one slice of the goal status distribution
type StatusCount struct {
	Status string
	Count  int
}

// GoalStatusCounts groups goals by status in display order. Unknown statuses
// are appended so the counts always sum to len(goals).
func GoalStatusCounts(goals []client.Goal) []StatusCount {
	counts := make(map[string]int, len(GoalStatusOrder))
	for _, g := range goals {
		counts[g.Status]++
	}

	out := make([]StatusCount, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, status := range GoalStatusOrder {
		if n, ok := counts[status]; ok {
			out = append(out, StatusCount{Status: status, Count: n})
			seen[status] = true
		}
	}
	for _, g := range goals {
		if !seen[g.Status] {
			out = append(out, StatusCount{Status: g.Status, Count: counts[g.Status]})
			seen[g.Status] = true
		}
	}
	return out
}

// GoalCompletionRate returns the completed share of the list as a percentage
func GoalCompletionRate(goals []client.Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	completed := 0
	for _, g := range goals {
		if g.Status == client.GoalStatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(goals)) * 100
}

// GoalApprovedShare returns the manager-approved share as a percentage
func GoalApprovedShare(goals []client.Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	approved := 0
	for _, g := range goals {
		if g.ManagerApproved {
			approved++
		}
	}
	return float64(approved) / float64(len(goals)) * 100
}

// RatingRow is one bar of the average-ratings chart
type RatingRow struct {
	Name  string
	Value float64
}

// RatingRows flattens the server-computed averages into chart rows
func RatingRows(a client.AverageRatings) []RatingRow {
	return []RatingRow{
		{Name: "Overall", Value: a.Overall},
		{Name: "Technical", Value: a.Technical},
		{Name: "Communication", Value: a.Communication},
		{Name: "Leadership", Value: a.Leadership},
		{Name: "Teamwork", Value: a.Teamwork},
	}
}
