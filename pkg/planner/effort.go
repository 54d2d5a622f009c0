package planner

import (
	"math"

	"github.com/burndown/roadmap-api/pkg/models"
)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func remainingFor(effort models.RoleEffort) float64 {
	if !finite(effort.PlannedMandays) {
		return 0
	}
	done := effort.DonePercent
	if !finite(done) {
		done = 0
	}
	return math.Max(0, effort.PlannedMandays*(1-done/100))
}

// RemainingMandays sums the outstanding effort across every role on the project
// Roles are summed in sorted order so float sums are reproducible.
func RemainingMandays(p models.Project) float64 {
	total := 0.0
	for _, role := range p.SortedRoles() {
		total += remainingFor(p.Roles[role])
	}
	return total
}

// PlannedMandays sums the planned effort across every role, ignoring negative or non-finite entries
func PlannedMandays(p models.Project) float64 {
	total := 0.0
	for _, role := range p.SortedRoles() {
		planned := p.Roles[role].PlannedMandays
		if finite(planned) && planned > 0 {
			total += planned
		}
	}
	return total
}

// CompletionPercent is the share of planned effort already delivered (0-100)
func CompletionPercent(p models.Project) float64 {
	planned := PlannedMandays(p)
	if planned <= 0 {
		return 0
	}
	pct := (planned - RemainingMandays(p)) / planned * 100
	return round2(math.Min(100, math.Max(0, pct)))
}

// AverageDailyRate is the mean md_rate of members with a finite, positive rate.
// Returns 0 when nobody qualifies.
func AverageDailyRate(members []models.TeamMember) float64 {
	sum := 0.0
	count := 0
	for _, m := range members {
		if finite(m.MDRate) && m.MDRate > 0 {
			sum += m.MDRate
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round2(sum / float64(count))
}

// Capacity is the team throughput used by the scheduler
type Capacity struct {
	// Baseline is max(1, Raw) and is what the scheduler divides by
	Baseline float64
	Raw      float64
	// Fallback is set when Raw carried no capacity at all and Baseline is an assumed 1
	Fallback bool
}

// TeamCapacity sums member FTE, floored at 1
func TeamCapacity(members []models.TeamMember) Capacity {
	sum := 0.0
	for _, m := range members {
		if finite(m.FTE) {
			sum += m.FTE
		}
	}
	raw := round2(sum)
	return Capacity{
		Baseline: math.Max(1, raw),
		Raw:      raw,
		Fallback: raw <= 0,
	}
}
