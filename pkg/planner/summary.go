package planner

import "github.com/burndown/roadmap-api/pkg/models"

// Summarize folds scheduled items into scope-wide totals
func Summarize(items []models.RoadmapItem, capacity Capacity, rate float64) models.RoadmapSummary {
	summary := models.RoadmapSummary{
		TeamFTE:          capacity.Baseline,
		RawTeamFTE:       capacity.Raw,
		FallbackFTEUsed:  capacity.Fallback,
		AverageDailyRate: rate,
		ItemCount:        len(items),
		RiskCounts:       make(map[models.RiskLevel]int, len(models.RiskLevels)),
	}
	for _, level := range models.RiskLevels {
		summary.RiskCounts[level] = 0
	}

	var remaining, budget float64
	for _, item := range items {
		remaining += item.RemainingMandays
		budget += item.EstimatedBudget
		summary.TotalDurationWorkdays += item.EstimatedDurationWorkdays
		summary.RiskCounts[item.RiskLevel]++
	}
	summary.TotalRemainingMandays = round2(remaining)
	summary.TotalBudget = round2(budget)

	if len(items) > 0 {
		start := items[0].PlannedStart
		end := items[len(items)-1].PlannedFinish
		summary.RoadmapStart = &start
		summary.RoadmapEnd = &end
	}
	return summary
}
